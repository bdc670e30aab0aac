package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/hashgrid/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// PointsInBox generates points uniformly inside box grown by margin times the
// box extent on every side. margin=0 keeps all points inside the box.
func (r *RNG) PointsInBox(num int, box geom.BoundingBox, margin float32) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ext := box.Extent()
	pts := make([]geom.Vec3, num)
	for i := range num {
		for d := 0; d < 3; d++ {
			lo := box.Min[d] - margin*ext[d]
			span := ext[d] * (1 + 2*margin)
			pts[i][d] = lo + r.rand.Float32()*span
		}
	}

	return pts
}

// UnitDirections generates directions uniformly distributed on the unit sphere.
// Uses Gaussian sampling followed by normalization.
func (r *RNG) UnitDirections(num int) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	dirs := make([]geom.Vec3, num)
	for i := range num {
		var v [3]float64
		var norm float64
		for norm == 0 {
			for d := range v {
				v[d] = r.rand.NormFloat64()
			}
			norm = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		}
		for d := range v {
			dirs[i][d] = float32(v[d] / norm)
		}
	}

	return dirs
}

// GridPoints returns the (res+1)^3 vertices of a regular grid over box,
// ordered x-fastest.
func GridPoints(box geom.BoundingBox, res int) []geom.Vec3 {
	ext := box.Extent()
	side := res + 1
	pts := make([]geom.Vec3, 0, side*side*side)
	for z := 0; z < side; z++ {
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				pts = append(pts, geom.Vec3{
					box.Min[0] + ext[0]*float32(x)/float32(res),
					box.Min[1] + ext[1]*float32(y)/float32(res),
					box.Min[2] + ext[2]*float32(z)/float32(res),
				})
			}
		}
	}
	return pts
}
