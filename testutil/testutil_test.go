package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hashgrid/geom"
)

func TestPointsInBox(t *testing.T) {
	rng := NewRNG(4711)
	box := geom.BoundingBox{Min: geom.Vec3{-1, 0, 2}, Max: geom.Vec3{1, 1, 3}}

	pts := rng.PointsInBox(256, box, 0)

	assert.Len(t, pts, 256)
	for _, p := range pts {
		assert.True(t, box.Contains(p), "point %v outside box", p)
	}
}

func TestPointsInBox_Margin(t *testing.T) {
	rng := NewRNG(4711)
	box := geom.UnitBox()

	pts := rng.PointsInBox(512, box, 1)

	outside := 0
	for _, p := range pts {
		for d := 0; d < 3; d++ {
			assert.GreaterOrEqual(t, p[d], float32(-1))
			assert.LessOrEqual(t, p[d], float32(2))
		}
		if !box.Contains(p) {
			outside++
		}
	}
	assert.Greater(t, outside, 0)
}

func TestUnitDirections(t *testing.T) {
	rng := NewRNG(4711)

	dirs := rng.UnitDirections(32)

	assert.Len(t, dirs, 32)
	for _, d := range dirs {
		assert.InDelta(t, 1.0, d.Norm(), 1e-5)
	}
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.PointsInBox(4, geom.UnitBox(), 0)
	rng.Reset()
	b := rng.PointsInBox(4, geom.UnitBox(), 0)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestGridPoints(t *testing.T) {
	pts := GridPoints(geom.UnitBox(), 2)

	assert.Len(t, pts, 27)
	assert.Equal(t, geom.Vec3{0, 0, 0}, pts[0])
	assert.Equal(t, geom.Vec3{0.5, 0, 0}, pts[1])
	assert.Equal(t, geom.Vec3{1, 1, 1}, pts[26])
}
