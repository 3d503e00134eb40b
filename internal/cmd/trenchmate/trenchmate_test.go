package trenchmate

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("TRENCHMATE_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("trenchmate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/flag.db"})
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("expected flag to win, got %q", cfg.DBPath)
	}
}

func TestParseConfigDefault(t *testing.T) {
	t.Setenv("TRENCHMATE_DB_PATH", "")

	fs := flag.NewFlagSet("trenchmate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.DBPath != "trenchmate.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestRunSeedsAndSummarizes(t *testing.T) {
	t.Setenv("TRENCHMATE_OTEL_ENDPOINT", "")
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "trenchmate.db")}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "no campaigns on file") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	// A second run reopens the migrated store and reseeds cleanly.
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
}
