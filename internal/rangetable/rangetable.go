// Package rangetable resolves die rolls against tables of inclusive
// [min,max] roll ranges.
//
// Ranges within one table are disjoint but need not cover the full roll
// domain: an unmatched roll is a valid outcome, not an error, and callers
// must handle it as normal control flow.
package rangetable

import "fmt"

// Ranged is implemented by table entries that span an inclusive roll range.
type Ranged interface {
	// Range returns the inclusive [min,max] roll bounds of the entry.
	Range() (min, max int)
}

// Lookup returns the first entry whose range contains roll. The boolean
// reports whether a match was found; a miss is silent.
func Lookup[E Ranged](entries []E, roll int) (E, bool) {
	for _, entry := range entries {
		min, max := entry.Range()
		if roll >= min && roll <= max {
			return entry, true
		}
	}
	var zero E
	return zero, false
}

// Validate checks that entry ranges are well-formed and mutually disjoint.
// Reference tables are validated once at load time.
func Validate[E Ranged](entries []E) error {
	for i, entry := range entries {
		min, max := entry.Range()
		if min > max {
			return fmt.Errorf("entry %d: inverted range [%d,%d]", i, min, max)
		}
		for j := i + 1; j < len(entries); j++ {
			otherMin, otherMax := entries[j].Range()
			if min <= otherMax && otherMin <= max {
				return fmt.Errorf("entries %d and %d overlap: [%d,%d] and [%d,%d]", i, j, min, max, otherMin, otherMax)
			}
		}
	}
	return nil
}
