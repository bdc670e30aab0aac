package hashgrid

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/voxel"
)

// LevelOccupancy describes how the corners touched by a point set map onto
// one level's table.
type LevelOccupancy struct {
	Level      int
	Resolution int
	// Dense is true when every grid vertex of the level fits the table,
	// so the default indexer addresses it one-to-one.
	Dense bool
	// Lookups is the number of corner lookups (8 per point).
	Lookups int
	// Vertices is the number of distinct grid vertices touched.
	Vertices uint64
	// Slots is the number of distinct table slots touched.
	Slots uint64
}

// Collisions returns the number of touched vertices that share a slot with
// another touched vertex.
func (o LevelOccupancy) Collisions() uint64 {
	return o.Vertices - o.Slots
}

// CollisionRate returns Collisions()/Vertices, 0 for an empty set.
func (o LevelOccupancy) CollisionRate() float64 {
	if o.Vertices == 0 {
		return 0
	}
	return float64(o.Collisions()) / float64(o.Vertices)
}

// Occupancy runs the indexer over points and reports, per level, how many
// distinct vertices and slots they touch. The tables are not read.
func (e *Encoder) Occupancy(points []geom.Vec3) []LevelOccupancy {
	out := make([]LevelOccupancy, len(e.resolutions))

	for l, res := range e.resolutions {
		vertices := roaring64.New()
		slots := roaring.New()

		for _, p := range points {
			v := e.indexer.Index(e.box.Clamp(p), e.box, res, e.log2)
			for c := 0; c < voxel.NumCorners; c++ {
				vertices.Add(vertexKey(v.Coords[c]))
				slots.Add(v.Slots[c])
			}
		}

		out[l] = LevelOccupancy{
			Level:      l,
			Resolution: res,
			Dense:      voxel.FitsDense(res, e.log2),
			Lookups:    len(points) * voxel.NumCorners,
			Vertices:   vertices.GetCardinality(),
			Slots:      slots.GetCardinality(),
		}
	}

	return out
}

// vertexKey packs a vertex into 63 bits; coordinates are below 2^21 because
// resolutions are bounded by MaxResolution.
func vertexKey(c [3]int32) uint64 {
	const mask = 1<<21 - 1
	return uint64(c[0])&mask | (uint64(c[1])&mask)<<21 | (uint64(c[2])&mask)<<42
}

// TableStats summarises the values stored in one level's table.
type TableStats struct {
	Level  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// TableStats returns value statistics for every level's table.
func (e *Encoder) TableStats() []TableStats {
	out := make([]TableStats, e.tables.Levels())

	var buf []float64
	for l := range out {
		data := e.tables.Level(l).Data()
		if cap(buf) < len(data) {
			buf = make([]float64, len(data))
		}
		buf = buf[:len(data)]
		for i, v := range data {
			buf[i] = float64(v)
		}

		mean, std := stat.MeanStdDev(buf, nil)
		out[l] = TableStats{
			Level:  l,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(buf),
			Max:    floats.Max(buf),
		}
	}

	return out
}
