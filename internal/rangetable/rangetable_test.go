package rangetable

import "testing"

type span struct {
	min int
	max int
}

func (s span) Range() (int, int) { return s.min, s.max }

func TestLookupFindsContainingRange(t *testing.T) {
	entries := []span{{11, 16}, {21, 26}, {31, 66}}

	entry, ok := Lookup(entries, 24)
	if !ok {
		t.Fatalf("expected a match for 24")
	}
	if entry.min != 21 || entry.max != 26 {
		t.Fatalf("expected [21,26], got [%d,%d]", entry.min, entry.max)
	}
}

func TestLookupBoundsAreInclusive(t *testing.T) {
	entries := []span{{2, 4}}

	for _, roll := range []int{2, 3, 4} {
		if _, ok := Lookup(entries, roll); !ok {
			t.Fatalf("expected %d to match [2,4]", roll)
		}
	}
	for _, roll := range []int{1, 5} {
		if _, ok := Lookup(entries, roll); ok {
			t.Fatalf("expected %d to miss [2,4]", roll)
		}
	}
}

// TestLookupMissIsSilent ensures an uncovered roll is a valid no-match.
func TestLookupMissIsSilent(t *testing.T) {
	entries := []span{{11, 13}, {15, 16}}

	if _, ok := Lookup(entries, 14); ok {
		t.Fatalf("expected no match for a roll in the table gap")
	}
	if _, ok := Lookup[span](nil, 3); ok {
		t.Fatalf("expected no match against an empty table")
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	if err := Validate([]span{{1, 3}, {3, 5}}); err == nil {
		t.Fatalf("expected overlap error")
	}
	if err := Validate([]span{{4, 2}}); err == nil {
		t.Fatalf("expected inverted-range error")
	}
	if err := Validate([]span{{1, 2}, {3, 4}, {6, 6}}); err != nil {
		t.Fatalf("unexpected error for disjoint ranges: %v", err)
	}
}
