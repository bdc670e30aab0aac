package hashgrid_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashgrid"
	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/resource"
	"github.com/hupe1980/hashgrid/table"
	"github.com/hupe1980/hashgrid/testutil"
	"github.com/hupe1980/hashgrid/voxel"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestEncode_Empty(t *testing.T) {
	enc := newTestEncoder(t)

	out, err := enc.Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	res, err := enc.EncodeWithMask(context.Background(), []geom.Vec3{})
	require.NoError(t, err)
	assert.Empty(t, res.Features)
	assert.Equal(t, uint(0), res.InBounds.Count())
}

func TestEncode_OutputShape(t *testing.T) {
	enc := newTestEncoder(t)
	points := testutil.NewRNG(1).PointsInBox(100, geom.UnitBox(), 0)

	out, err := enc.Encode(context.Background(), points)
	require.NoError(t, err)
	require.Len(t, out, len(points))
	for _, v := range out {
		assert.Len(t, v, enc.OutDim())
		assert.Equal(t, enc.OutDim(), cap(v))
	}
}

// smallHashedOptions is the two-level setup whose coarsest grid (res 2, 27
// vertices) already exceeds the 16-slot tables.
func smallHashedOptions() []hashgrid.Option {
	return []hashgrid.Option{
		hashgrid.WithLevels(2),
		hashgrid.WithFeaturesPerLevel(2),
		hashgrid.WithLog2HashmapSize(4),
		hashgrid.WithBaseResolution(2),
		hashgrid.WithFinestResolution(4),
		hashgrid.WithInitScale(0),
	}
}

func TestEncode_ZeroTables(t *testing.T) {
	enc, err := hashgrid.New(geom.UnitBox(), smallHashedOptions()...)
	require.NoError(t, err)
	defer enc.Close()

	require.Equal(t, 2, enc.Resolutions()[0])
	require.False(t, voxel.FitsDense(2, 4))

	out, err := enc.Encode(context.Background(), []geom.Vec3{{0.5, 0.5, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 0, 0, 0}}, out)
}

func TestEncode_SingleCorner(t *testing.T) {
	box := geom.UnitBox()
	enc, err := hashgrid.New(box, smallHashedOptions()...)
	require.NoError(t, err)
	defer enc.Close()

	origin := geom.Vec3{0, 0, 0}
	v := voxel.SpatialHash{}.Index(origin, box, 2, 4)
	require.Equal(t, [3]int32{0, 0, 0}, v.Coords[0])
	require.NoError(t, enc.Table(0).Set(v.Slots[0], []float32{1, 1}))

	out, err := enc.EncodePoint(origin)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, []float32{1, 1}, out[:2])
}

func TestEncode_SingleCornerDense(t *testing.T) {
	box := geom.UnitBox()
	enc, err := hashgrid.New(box,
		hashgrid.WithLevels(1),
		hashgrid.WithFeaturesPerLevel(2),
		hashgrid.WithLog2HashmapSize(6),
		hashgrid.WithBaseResolution(2),
		hashgrid.WithFinestResolution(2),
		hashgrid.WithInitScale(0),
	)
	require.NoError(t, err)
	defer enc.Close()

	origin := geom.Vec3{0, 0, 0}
	v := voxel.SpatialHash{}.Index(origin, box, 2, 6)
	require.NoError(t, enc.Table(0).Set(v.Slots[0], []float32{1, 1}))

	out, err := enc.EncodePoint(origin)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, out)
}

func TestEncode_GridVerticesReturnTableRows(t *testing.T) {
	const res = 8
	box := geom.UnitBox()
	enc, err := hashgrid.New(box,
		hashgrid.WithLevels(1),
		hashgrid.WithLog2HashmapSize(10),
		hashgrid.WithBaseResolution(res),
		hashgrid.WithFinestResolution(res),
		hashgrid.WithInitScale(1),
		hashgrid.WithWorkers(1),
	)
	require.NoError(t, err)
	defer enc.Close()

	points := testutil.GridPoints(box, res)
	out, err := enc.Encode(context.Background(), points)
	require.NoError(t, err)

	// Grid points are ordered x-fastest, matching the dense slot layout.
	for i, v := range out {
		want := enc.Table(0).Row(uint32(i))
		if diff := cmp.Diff(want, v, approx); diff != "" {
			t.Fatalf("vertex %d %v mismatch (-want +got):\n%s", i, points[i], diff)
		}
	}
}

func TestEncode_GridVerticesExactOnOffsetBox(t *testing.T) {
	box := geom.BoundingBox{Min: geom.Vec3{-1.3, -0.7, -2.1}, Max: geom.Vec3{2.9, 1.7, 0.3}}
	ext := box.Extent()

	for _, res := range []int{3, 5, 11} {
		enc, err := hashgrid.New(box,
			hashgrid.WithLevels(1),
			hashgrid.WithLog2HashmapSize(12),
			hashgrid.WithBaseResolution(float64(res)),
			hashgrid.WithFinestResolution(float64(res)),
			hashgrid.WithInitScale(1),
			hashgrid.WithWorkers(1),
		)
		require.NoError(t, err)
		require.True(t, voxel.FitsDense(res, 12))

		side := res + 1
		for z := 0; z < res; z++ {
			for y := 0; y < res; y++ {
				for x := 0; x < res; x++ {
					idx := [3]int{x, y, z}
					var centre geom.Vec3
					for d := 0; d < 3; d++ {
						centre[d] = box.Min[d] + ext[d]*(float32(idx[d])+0.5)/float32(res)
					}
					// The cell's min corner is the grid vertex (x, y, z).
					cell, corner, _ := voxel.Locate(centre, box, res)
					require.Equal(t, [3]int32{int32(x), int32(y), int32(z)}, cell)

					got, err := enc.EncodePoint(corner)
					require.NoError(t, err)

					slot := uint32(x + y*side + z*side*side)
					require.Equal(t, enc.Table(0).Row(slot), got, "res=%d vertex=%v", res, idx)
				}
			}
		}
		require.NoError(t, enc.Close())
	}
}

func TestEncode_Continuity(t *testing.T) {
	enc := newTestEncoder(t, hashgrid.WithInitScale(1), hashgrid.WithSeed(9))
	const eps = 1e-6

	// x = 0.5 is a cell boundary on the coarse levels.
	below := geom.Vec3{0.5 - eps, 0.3, 0.7}
	above := geom.Vec3{0.5 + eps, 0.3, 0.7}

	a, err := enc.EncodePoint(below)
	require.NoError(t, err)
	b, err := enc.EncodePoint(above)
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, a[i], b[i], 1e-3, "component %d", i)
	}
}

func TestEncode_Bounded(t *testing.T) {
	enc := newTestEncoder(t, hashgrid.WithInitScale(1))
	points := testutil.NewRNG(3).PointsInBox(500, geom.UnitBox(), 0)

	out, err := enc.Encode(context.Background(), points)
	require.NoError(t, err)

	// A convex blend of rows in [-1, 1] stays in [-1, 1].
	for _, v := range out {
		for _, x := range v {
			require.False(t, math.IsNaN(float64(x)))
			require.LessOrEqual(t, math.Abs(float64(x)), 1+1e-6)
		}
	}
}

func TestEncode_OutOfBox(t *testing.T) {
	enc := newTestEncoder(t, hashgrid.WithInitScale(1))
	ctx := context.Background()

	points := []geom.Vec3{
		{2, 2, 2},
		{1, 1, 1},
		{-1, 0.5, 0.5},
		{0, 0.5, 0.5},
		{0.25, 0.5, 0.75},
	}

	res, err := enc.EncodeWithMask(ctx, points)
	require.NoError(t, err)

	assert.Equal(t, res.Features[1], res.Features[0])
	assert.Equal(t, res.Features[3], res.Features[2])

	assert.False(t, res.InBounds.Test(0))
	assert.True(t, res.InBounds.Test(1))
	assert.False(t, res.InBounds.Test(2))
	assert.True(t, res.InBounds.Test(3))
	assert.True(t, res.InBounds.Test(4))
	assert.Equal(t, uint(3), res.InBounds.Count())
}

func TestEncode_DegenerateBox(t *testing.T) {
	box, err := geom.NewBoundingBox(geom.Vec3{0, 0, 0.5}, geom.Vec3{1, 1, 0.5})
	require.NoError(t, err)

	enc, err := hashgrid.New(box,
		hashgrid.WithLevels(2),
		hashgrid.WithLog2HashmapSize(8),
		hashgrid.WithBaseResolution(2),
		hashgrid.WithFinestResolution(8),
		hashgrid.WithInitScale(1),
	)
	require.NoError(t, err)
	defer enc.Close()

	out, err := enc.EncodePoint(geom.Vec3{0.3, 0.6, 0.5})
	require.NoError(t, err)
	for _, x := range out {
		assert.False(t, math.IsNaN(float64(x)))
		assert.False(t, math.IsInf(float64(x), 0))
	}
}

func TestEncodeInto(t *testing.T) {
	enc := newTestEncoder(t)
	ctx := context.Background()
	points := testutil.NewRNG(4).PointsInBox(20, geom.UnitBox(), 0)

	dst := make([]float32, len(points)*enc.OutDim())
	require.NoError(t, enc.EncodeInto(ctx, points, dst))

	out, err := enc.Encode(ctx, points)
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, dst[i*enc.OutDim():(i+1)*enc.OutDim()], v)
	}

	err = enc.EncodeInto(ctx, points, dst[:len(dst)-1])
	var se *hashgrid.ErrOutputSize
	require.ErrorAs(t, err, &se)
	assert.Equal(t, len(dst), se.Expected)
	assert.Equal(t, len(dst)-1, se.Actual)
}

func TestEncode_CanceledContext(t *testing.T) {
	enc := newTestEncoder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := enc.Encode(ctx, []geom.Vec3{{0.5, 0.5, 0.5}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncode_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	points := testutil.NewRNG(5).PointsInBox(5000, geom.UnitBox(), 0.1)

	seq := newTestEncoder(t, hashgrid.WithSeed(11), hashgrid.WithInitScale(1), hashgrid.WithWorkers(1))
	par := newTestEncoder(t, hashgrid.WithSeed(11), hashgrid.WithInitScale(1), hashgrid.WithWorkers(4), hashgrid.WithChunkSize(100))

	want, err := seq.Encode(ctx, points)
	require.NoError(t, err)
	got, err := par.Encode(ctx, points)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestEncode_Concurrent(t *testing.T) {
	ctx := context.Background()
	enc := newTestEncoder(t, hashgrid.WithInitScale(1), hashgrid.WithChunkSize(64))
	points := testutil.NewRNG(6).PointsInBox(1000, geom.UnitBox(), 0)

	want, err := enc.Encode(ctx, points)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][][]float32, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = enc.Encode(ctx, points)
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestEncode_WithResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxWorkers: 2, PointsPerSec: 1_000_000})
	enc := newTestEncoder(t, hashgrid.WithResourceController(rc), hashgrid.WithChunkSize(32))

	out, err := enc.Encode(context.Background(), testutil.NewRNG(7).PointsInBox(300, geom.UnitBox(), 0))
	require.NoError(t, err)
	assert.Len(t, out, 300)
}

func TestEncode_Indexers(t *testing.T) {
	ctx := context.Background()
	points := testutil.NewRNG(8).PointsInBox(50, geom.UnitBox(), 0)

	for _, ix := range []voxel.Indexer{voxel.SpatialHash{}, voxel.XORHash{}, voxel.Dense{}} {
		enc := newTestEncoder(t, hashgrid.WithIndexer(ix))
		out, err := enc.Encode(ctx, points)
		require.NoError(t, err)
		assert.Len(t, out, len(points))
	}
}

// brokenIndexer returns a slot one past the end of the table.
type brokenIndexer struct{}

func (brokenIndexer) Index(p geom.Vec3, box geom.BoundingBox, resolution int, log2TableSize uint) voxel.Voxel {
	v := voxel.SpatialHash{}.Index(p, box, resolution, log2TableSize)
	v.Slots[3] = 1 << log2TableSize
	return v
}

func TestEncode_SlotOutOfRangePanics(t *testing.T) {
	enc := newTestEncoder(t, hashgrid.WithIndexer(brokenIndexer{}), hashgrid.WithWorkers(1))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_, _ = enc.EncodePoint(geom.Vec3{0.5, 0.5, 0.5})
	}()

	require.NotNil(t, recovered)
	err, ok := recovered.(*table.ErrSlotOutOfRange)
	require.True(t, ok, "unexpected panic value %v", recovered)
	assert.Equal(t, 0, err.Level)
	assert.Equal(t, uint32(1<<12), err.Slot)

	assert.Panics(t, func() {
		_, _ = enc.Encode(context.Background(), []geom.Vec3{{0.1, 0.1, 0.1}})
	})
}
