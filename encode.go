package hashgrid

import (
	"context"
	"time"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/internal/blend"
	"github.com/hupe1980/hashgrid/internal/pool"
)

// Result is the output of EncodeWithMask.
type Result struct {
	// Features holds one OutDim() vector per input point.
	Features [][]float32
	// InBounds has bit i set if point i lies inside the bounding box.
	// Points outside are encoded at their nearest point on the box.
	InBounds *bitset.BitSet
}

// Encode returns one OutDim() feature vector per point. The vectors share a
// single backing slice. An empty batch yields an empty result.
//
// Points outside the bounding box are clamped onto it. Encoding never writes
// to the feature tables.
func (e *Encoder) Encode(ctx context.Context, points []geom.Vec3) ([][]float32, error) {
	data := make([]float32, len(points)*e.outDim)
	if err := e.EncodeInto(ctx, points, data); err != nil {
		return nil, err
	}
	return e.split(data, len(points)), nil
}

// EncodeInto writes the features of every point into dst, point after point.
// len(dst) must equal len(points)*OutDim().
func (e *Encoder) EncodeInto(ctx context.Context, points []geom.Vec3, dst []float32) error {
	start := time.Now()
	err := e.encodeInto(ctx, points, dst)
	e.metrics.RecordEncode(len(points), time.Since(start), err)
	e.logger.LogEncode(ctx, len(points), err)
	return err
}

// EncodeWithMask encodes points and reports which of them were inside the
// bounding box.
func (e *Encoder) EncodeWithMask(ctx context.Context, points []geom.Vec3) (*Result, error) {
	features, err := e.Encode(ctx, points)
	if err != nil {
		return nil, err
	}

	mask := bitset.New(uint(len(points)))
	for i, p := range points {
		if e.box.Contains(p) {
			mask.Set(uint(i))
		}
	}

	return &Result{Features: features, InBounds: mask}, nil
}

// EncodePoint encodes a single point on the calling goroutine.
func (e *Encoder) EncodePoint(p geom.Vec3) ([]float32, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	out := make([]float32, e.outDim)
	e.encodeRange([]geom.Vec3{p}, out)
	return out, nil
}

func (e *Encoder) encodeInto(ctx context.Context, points []geom.Vec3, dst []float32) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if want := len(points) * e.outDim; len(dst) != want {
		return &ErrOutputSize{Expected: want, Actual: len(dst)}
	}
	if len(points) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.rc.AcquirePoints(ctx, len(points)); err != nil {
		return err
	}

	n := len(points)
	if e.workers == 1 || n <= e.chunkSize {
		if err := e.rc.AcquireWorker(ctx); err != nil {
			return err
		}
		defer e.rc.ReleaseWorker()
		e.encodeRange(points, dst)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for lo := 0; lo < n; lo += e.chunkSize {
		hi := min(lo+e.chunkSize, n)
		g.Go(func() error {
			if err := e.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer e.rc.ReleaseWorker()
			e.encodeRange(points[lo:hi], dst[lo*e.outDim:hi*e.outDim])
			return nil
		})
	}

	return g.Wait()
}

// encodeRange encodes points into dst, level by level per point. Each level
// writes only its own F-wide slot of the output vector.
//
// A slot outside a level's table panics with *table.ErrSlotOutOfRange: the
// indexer broke its contract and the process cannot continue safely.
func (e *Encoder) encodeRange(points []geom.Vec3, dst []float32) {
	ec := pool.Get()
	defer pool.Put(ec)

	f := e.cfg.FeaturesPerLevel
	for i, p := range points {
		out := dst[i*e.outDim : (i+1)*e.outDim]
		q := e.box.Clamp(p)

		for l, res := range e.resolutions {
			tb := e.tables.Level(l)
			v := e.indexer.Index(q, e.box, res, e.log2)
			for c := range ec.Corners {
				ec.Corners[c] = tb.Row(v.Slots[c])
			}
			blend.Point(out[l*f:(l+1)*f], q, v.Min, v.Max, &ec.Corners, ec.Blend)
		}
	}
}

func (e *Encoder) split(data []float32, n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = data[i*e.outDim : (i+1)*e.outDim : (i+1)*e.outDim]
	}
	return out
}
