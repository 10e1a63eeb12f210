// Package entropy provides the session's shared pseudo-random source.
// One Source per session; determinism holds for an identical seed and call
// sequence, never across reordered calls.
package entropy

import "math/rand"

// Source wraps a seeded generator and counts draws so a restored session can
// fast-forward to the same stream position.
type Source struct {
	rng   *rand.Rand
	seed  int64
	draws uint64
}

// NewSource creates a source from a seed.
func NewSource(seed int64) *Source {
	return &Source{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Restore recreates a source at a previous stream position by replaying
// the recorded number of draws.
func Restore(seed int64, draws uint64) *Source {
	s := NewSource(seed)
	for i := uint64(0); i < draws; i++ {
		s.rng.Float64()
	}
	s.draws = draws
	return s
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 { return s.seed }

// Draws returns how many values have been drawn so far.
func (s *Source) Draws() uint64 { return s.draws }

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	s.draws++
	return s.rng.Float64()
}

// Intn returns a random int in [0, n). n must be > 0.
func (s *Source) Intn(n int) int {
	return int(s.Float() * float64(n))
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float() < p
}

// WeightedIndex picks an index proportionally to the given weights.
// Non-positive weights count as zero; if every weight is zero the first
// index is returned.
func (s *Source) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		s.Float() // keep the stream position consistent
		return 0
	}
	roll := s.Float() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}
