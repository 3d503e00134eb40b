package id

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	generated, err := NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}
	if len(generated) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(generated), generated)
	}
	if generated != strings.ToLower(generated) {
		t.Fatalf("expected lowercase identifier, got %q", generated)
	}
	if strings.Contains(generated, "=") {
		t.Fatalf("expected no padding, got %q", generated)
	}
}

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		generated, err := NewID()
		if err != nil {
			t.Fatalf("NewID returned error: %v", err)
		}
		if seen[generated] {
			t.Fatalf("duplicate identifier generated: %q", generated)
		}
		seen[generated] = true
	}
}
