// Package rng provides the seeded random source used to initialise feature tables.
package rng

import "math/rand"

// RNG encapsulates a deterministic random number generator and its seed.
// It is not safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// New creates a new RNG instance with the specified seed.
func New(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}
