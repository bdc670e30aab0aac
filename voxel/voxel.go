package voxel

import (
	"math"

	"github.com/hupe1980/hashgrid/geom"
)

// Hash primes, one per axis. The x prime is 1 so the x coordinate enters the
// hash unchanged.
const (
	PrimeX uint32 = 1
	PrimeY uint32 = 2654435761
	PrimeZ uint32 = 805459861
)

// NumCorners is the number of corners of a voxel.
const NumCorners = 8

// Voxel is the cell containing a query point at one resolution.
type Voxel struct {
	// Min and Max are the cell corners in box coordinates.
	Min, Max geom.Vec3
	// Coords are the integer grid coordinates of the 8 corners.
	Coords [NumCorners][3]int32
	// Slots are the table slots of the 8 corners, each in [0, 2^log2TableSize).
	Slots [NumCorners]uint32
}

// Indexer resolves voxel geometry and corner slots.
//
// Implementations must be pure: the same arguments always yield the same
// Voxel. Points outside the box must still produce a valid Voxel.
type Indexer interface {
	Index(p geom.Vec3, box geom.BoundingBox, resolution int, log2TableSize uint) Voxel
}

// CornerOffset returns the (x, y, z) offset of corner c.
func CornerOffset(c int) [3]int32 {
	return [3]int32{int32(c >> 2 & 1), int32(c >> 1 & 1), int32(c & 1)}
}

// Locate finds the cell containing p at the given resolution.
//
// p is clamped to the box first. The cell index is clamped to
// [0, resolution-1] so points on the max face fall in the last cell.
// Along a zero-extent axis the cell is 0 and min == max.
//
// Cell edges are computed by cellEdge only, and the returned cell always
// satisfies lo <= p < hi in float32 (p <= hi in the last cell, whose hi is
// the box max). A point placed at a cell's lo therefore locates back to that
// cell with weight exactly 0.
func Locate(p geom.Vec3, box geom.BoundingBox, resolution int) (cell [3]int32, lo, hi geom.Vec3) {
	if resolution < 1 {
		resolution = 1
	}
	p = box.Clamp(p)
	res := float32(resolution)
	last := int32(resolution - 1)

	for d := 0; d < 3; d++ {
		size := (box.Max[d] - box.Min[d]) / res
		if size <= 0 {
			cell[d] = 0
			lo[d] = box.Min[d]
			hi[d] = box.Min[d]
			continue
		}

		idx := int32(math.Floor(float64((p[d] - box.Min[d]) / size)))
		idx = max(0, min(idx, last))

		// The division above and cellEdge round independently; settle on the
		// cell whose float32 edges actually bracket p.
		for idx > 0 && cellEdge(box.Min[d], size, idx) > p[d] {
			idx--
		}
		for idx < last && cellEdge(box.Min[d], size, idx+1) <= p[d] {
			idx++
		}

		cell[d] = idx
		lo[d] = cellEdge(box.Min[d], size, idx)
		if idx == last {
			hi[d] = box.Max[d]
		} else {
			hi[d] = cellEdge(box.Min[d], size, idx+1)
		}
	}

	return cell, lo, hi
}

// cellEdge returns the lower edge of cell i. The explicit conversion keeps
// the product rounded on its own so no fused multiply-add changes the edge.
func cellEdge(minD, size float32, i int32) float32 {
	return minD + float32(float32(i)*size)
}

// HashCoord hashes an integer grid vertex into [0, 2^log2TableSize).
func HashCoord(x, y, z int32, log2TableSize uint) uint32 {
	h := uint32(x)*PrimeX ^ uint32(y)*PrimeY ^ uint32(z)*PrimeZ
	return h & tableMask(log2TableSize)
}

// FitsDense reports whether all (resolution+1)^3 corner vertices of a grid
// can be addressed one-to-one in a table of 2^log2TableSize slots.
func FitsDense(resolution int, log2TableSize uint) bool {
	if resolution < 0 {
		return false
	}
	side := uint64(resolution) + 1
	if side > 1<<21 {
		return false
	}
	return side*side*side <= uint64(1)<<log2TableSize
}

func tableMask(log2TableSize uint) uint32 {
	return uint32((uint64(1) << log2TableSize) - 1)
}

func linearIndex(c [3]int32, resolution int) uint64 {
	side := uint64(resolution) + 1
	return uint64(c[0]) + uint64(c[1])*side + uint64(c[2])*side*side
}

// fill runs Locate and computes the corner coordinates; slot assigns slots.
func fill(p geom.Vec3, box geom.BoundingBox, resolution int, slot func(c [3]int32) uint32) Voxel {
	cell, lo, hi := Locate(p, box, resolution)

	v := Voxel{Min: lo, Max: hi}
	for c := 0; c < NumCorners; c++ {
		off := CornerOffset(c)
		coord := [3]int32{cell[0] + off[0], cell[1] + off[1], cell[2] + off[2]}
		v.Coords[c] = coord
		v.Slots[c] = slot(coord)
	}

	return v
}

// SpatialHash addresses corners densely while the grid fits in the table and
// falls back to the XOR prime hash once it does not.
type SpatialHash struct{}

// Index implements Indexer.
func (SpatialHash) Index(p geom.Vec3, box geom.BoundingBox, resolution int, log2TableSize uint) Voxel {
	if resolution < 1 {
		resolution = 1
	}
	if FitsDense(resolution, log2TableSize) {
		return fill(p, box, resolution, func(c [3]int32) uint32 {
			return uint32(linearIndex(c, resolution))
		})
	}
	return fill(p, box, resolution, func(c [3]int32) uint32 {
		return HashCoord(c[0], c[1], c[2], log2TableSize)
	})
}

// XORHash always uses the XOR prime hash.
type XORHash struct{}

// Index implements Indexer.
func (XORHash) Index(p geom.Vec3, box geom.BoundingBox, resolution int, log2TableSize uint) Voxel {
	return fill(p, box, resolution, func(c [3]int32) uint32 {
		return HashCoord(c[0], c[1], c[2], log2TableSize)
	})
}

// Dense uses the linear vertex index modulo the table size.
type Dense struct{}

// Index implements Indexer.
func (Dense) Index(p geom.Vec3, box geom.BoundingBox, resolution int, log2TableSize uint) Voxel {
	if resolution < 1 {
		resolution = 1
	}
	size := uint64(1) << log2TableSize
	return fill(p, box, resolution, func(c [3]int32) uint32 {
		return uint32(linearIndex(c, resolution) % size)
	})
}

var (
	_ Indexer = SpatialHash{}
	_ Indexer = XORHash{}
	_ Indexer = Dense{}
)
