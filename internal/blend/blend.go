// Package blend implements trilinear blending of the 8 corner feature vectors
// of a voxel.
//
// Corner order follows package voxel: corner c has offset
// (c>>2&1, c>>1&1, c&1) along (x, y, z). The reduction interpolates x first
// (c with c+4), then y (c with c+2), then z (c with c+1).
package blend

import (
	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/internal/simd"
)

// Weights returns the per-axis interpolation weight of p inside [lo, hi].
//
// A zero-extent axis (hi == lo) yields weight 0, so the result takes the
// lower corner along that axis instead of dividing by zero. Weights are not
// clamped; p outside [lo, hi] extrapolates.
func Weights(p, lo, hi geom.Vec3) [3]float32 {
	var w [3]float32
	for d := 0; d < 3; d++ {
		den := hi[d] - lo[d]
		if den == 0 {
			continue
		}
		w[d] = (p[d] - lo[d]) / den
	}
	return w
}

// Scratch holds the intermediate vectors of one reduction. Reuse it across
// calls to avoid allocations; it is not safe for concurrent use.
type Scratch struct {
	buf []float32
}

// NewScratch returns scratch space for feature vectors of length features.
func NewScratch(features int) *Scratch {
	return &Scratch{buf: make([]float32, 6*features)}
}

func (s *Scratch) ensure(features int) {
	if len(s.buf) < 6*features {
		s.buf = make([]float32, 6*features)
	}
}

// Trilinear writes the blend of corners at weights w into dst.
// Every corner and dst must have the same length.
func Trilinear(dst []float32, w [3]float32, corners *[8][]float32, s *Scratch) {
	f := len(dst)
	s.ensure(f)

	c00 := s.buf[0*f : 1*f]
	c01 := s.buf[1*f : 2*f]
	c10 := s.buf[2*f : 3*f]
	c11 := s.buf[3*f : 4*f]
	c0 := s.buf[4*f : 5*f]
	c1 := s.buf[5*f : 6*f]

	// x: 8 -> 4
	simd.Lerp(c00, corners[0], corners[4], w[0])
	simd.Lerp(c01, corners[1], corners[5], w[0])
	simd.Lerp(c10, corners[2], corners[6], w[0])
	simd.Lerp(c11, corners[3], corners[7], w[0])

	// y: 4 -> 2
	simd.Lerp(c0, c00, c10, w[1])
	simd.Lerp(c1, c01, c11, w[1])

	// z: 2 -> 1
	simd.Lerp(dst, c0, c1, w[2])
}

// Point blends corners for the query point p inside the cell [lo, hi].
func Point(dst []float32, p, lo, hi geom.Vec3, corners *[8][]float32, s *Scratch) {
	Trilinear(dst, Weights(p, lo, hi), corners, s)
}
