package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/hashgrid"
	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/testutil"
	"github.com/hupe1980/hashgrid/voxel"
)

func newEncoder(b *testing.B, opts ...hashgrid.Option) *hashgrid.Encoder {
	b.Helper()
	enc, err := hashgrid.New(geom.UnitBox(), opts...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	b.Cleanup(func() { _ = enc.Close() })
	return enc
}

func BenchmarkEncodePoint(b *testing.B) {
	enc := newEncoder(b)
	points := testutil.NewRNG(1).PointsInBox(1024, geom.UnitBox(), 0)

	BenchLoop(b, len(points), func(i int) {
		_, _ = enc.EncodePoint(points[i])
	})
}

func BenchmarkEncodeBatch(b *testing.B) {
	ctx := context.Background()

	for _, n := range []int{256, 4096, 65536} {
		for _, workers := range []int{1, 4, 0} {
			b.Run(fmt.Sprintf("N=%d/Workers=%d", n, workers), func(b *testing.B) {
				enc := newEncoder(b, hashgrid.WithWorkers(workers))
				points := testutil.NewRNG(2).PointsInBox(n, geom.UnitBox(), 0)
				dst := make([]float32, n*enc.OutDim())

				BenchLoop(b, 1, func(int) {
					if err := enc.EncodeInto(ctx, points, dst); err != nil {
						b.Fatal(err)
					}
				})
				reportPointRate(b, n)
			})
		}
	}
}

func BenchmarkEncodeLevels(b *testing.B) {
	ctx := context.Background()
	points := testutil.NewRNG(3).PointsInBox(4096, geom.UnitBox(), 0)

	for _, levels := range []int{4, 8, 16, 32} {
		b.Run(fmt.Sprintf("L=%d", levels), func(b *testing.B) {
			enc := newEncoder(b, hashgrid.WithLevels(levels), hashgrid.WithWorkers(1))
			dst := make([]float32, len(points)*enc.OutDim())

			BenchLoop(b, 1, func(int) {
				_ = enc.EncodeInto(ctx, points, dst)
			})
			reportPointRate(b, len(points))
		})
	}
}

func BenchmarkIndexers(b *testing.B) {
	box := geom.UnitBox()
	points := testutil.NewRNG(4).PointsInBox(1024, box, 0)

	indexers := []struct {
		name string
		ix   voxel.Indexer
	}{
		{"SpatialHash", voxel.SpatialHash{}},
		{"XORHash", voxel.XORHash{}},
		{"Dense", voxel.Dense{}},
	}

	for _, tc := range indexers {
		for _, res := range []int{16, 512} {
			b.Run(fmt.Sprintf("%s/res=%d", tc.name, res), func(b *testing.B) {
				BenchLoop(b, len(points), func(i int) {
					_ = tc.ix.Index(points[i], box, res, 19)
				})
			})
		}
	}
}

func BenchmarkDirectional(b *testing.B) {
	dirs := testutil.NewRNG(5).UnitDirections(1024)

	for degree := 1; degree <= 5; degree++ {
		b.Run(fmt.Sprintf("degree=%d", degree), func(b *testing.B) {
			enc, err := hashgrid.NewDirectionalEncoder(degree)
			if err != nil {
				b.Fatal(err)
			}
			dst := make([]float32, enc.OutDim())

			BenchLoop(b, len(dirs), func(i int) {
				enc.EncodeInto(dirs[i], dst)
			})
		})
	}
}

func BenchmarkOccupancy(b *testing.B) {
	enc := newEncoder(b, hashgrid.WithLevels(8))
	points := testutil.NewRNG(6).PointsInBox(4096, geom.UnitBox(), 0)

	BenchLoop(b, 1, func(int) {
		_ = enc.Occupancy(points)
	})
}
