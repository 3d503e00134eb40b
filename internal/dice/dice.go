// Package dice implements die rolls for campaign table resolution.
//
// Rolls come from a Roller so table resolution stays deterministic in
// tests: production code seeds a roller from crypto-random entropy while
// tests construct one from a fixed seed.
package dice

import (
	"math/rand"

	"github.com/trench-tools/trenchmate/internal/random"
)

// Roller produces die results for table resolution.
type Roller interface {
	// D6 returns an integer uniformly distributed in [1,6].
	D6() int
	// D66 returns a compound result of two d6 rolls rendered as a
	// two-digit number: tens digit times ten plus units digit. The
	// domain is exactly the 36 combinations between 11 and 66 whose
	// digits are both in [1,6].
	D66() int
}

// Seeded is a deterministic Roller backed by a seeded PRNG.
//
// Given the same seed, a Seeded roller always produces the same roll
// sequence. It is not safe for concurrent use; the engine assumes a
// single operator.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a deterministic roller from the provided seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// NewRoller creates a roller seeded from crypto-random entropy.
func NewRoller() (*Seeded, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed), nil
}

// D6 returns a uniform roll in [1,6].
func (s *Seeded) D6() int {
	return s.rng.Intn(6) + 1
}

// D66 composes two independent d6 rolls into a two-digit result.
// The tens die is rolled first.
func (s *Seeded) D66() int {
	tens := s.D6()
	units := s.D6()
	return tens*10 + units
}
