// Package geom provides the small 3D value types shared by the encoders.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBox is returned when a bounding box has inverted or non-finite corners.
var ErrInvalidBox = errors.New("invalid bounding box")

// Vec3 is a point or direction in 3D space.
type Vec3 [3]float32

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize returns v scaled to unit length.
// Returns false if v has zero length.
func (v Vec3) Normalize() (Vec3, bool) {
	n := v.Norm()
	if n == 0 {
		return v, false
	}
	return v.Scale(1 / n), true
}

// BoundingBox is an axis-aligned box given by its min and max corners.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewBoundingBox returns a validated bounding box.
func NewBoundingBox(minCorner, maxCorner Vec3) (BoundingBox, error) {
	b := BoundingBox{Min: minCorner, Max: maxCorner}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return b, nil
}

// UnitBox returns the box [0,1]^3.
func UnitBox() BoundingBox {
	return BoundingBox{Max: Vec3{1, 1, 1}}
}

// Validate checks that all coordinates are finite and Min <= Max on every axis.
// A zero extent along an axis is allowed.
func (b BoundingBox) Validate() error {
	for d := 0; d < 3; d++ {
		lo, hi := float64(b.Min[d]), float64(b.Max[d])
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: axis %d is not finite (min=%v, max=%v)", ErrInvalidBox, d, lo, hi)
		}
		if hi < lo {
			return fmt.Errorf("%w: axis %d has max %v < min %v", ErrInvalidBox, d, hi, lo)
		}
	}
	return nil
}

// Extent returns Max - Min.
func (b BoundingBox) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the closed box.
func (b BoundingBox) Contains(p Vec3) bool {
	for d := 0; d < 3; d++ {
		if p[d] < b.Min[d] || p[d] > b.Max[d] {
			return false
		}
	}
	return true
}

// Clamp returns p with every coordinate clamped into the box.
func (b BoundingBox) Clamp(p Vec3) Vec3 {
	for d := 0; d < 3; d++ {
		if p[d] < b.Min[d] {
			p[d] = b.Min[d]
		} else if p[d] > b.Max[d] {
			p[d] = b.Max[d]
		}
	}
	return p
}
