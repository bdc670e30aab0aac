package hashgrid

import (
	"context"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/internal/rng"
	"github.com/hupe1980/hashgrid/internal/simd"
	"github.com/hupe1980/hashgrid/resource"
	"github.com/hupe1980/hashgrid/table"
	"github.com/hupe1980/hashgrid/voxel"
)

// pointsPerLane scales the default chunk size with the SIMD width.
const pointsPerLane = 256

// Encoder is a multiresolution hash encoding of 3D points.
//
// Encoding only reads the feature tables and is safe for concurrent use.
// Writes to the tables (training updates) must not overlap with encoding;
// the caller separates update and encode phases.
type Encoder struct {
	id          uuid.UUID
	cfg         Config
	box         geom.BoundingBox
	growth      float64
	resolutions []int
	log2        uint
	outDim      int

	indexer voxel.Indexer
	tables  *table.Arena

	workers   int
	chunkSize int
	rc        *resource.Controller
	logger    *Logger
	metrics   MetricsCollector

	closed atomic.Bool
}

// New creates an Encoder for points inside box.
//
// Invalid parameters fail with a *ConfigError (errors.Is(err, ErrInvalidConfig)).
// Tables are initialised uniformly in [-InitScale, InitScale] from Seed.
func New(box geom.BoundingBox, optFns ...Option) (*Encoder, error) {
	o := options{
		cfg:     DefaultConfig(),
		indexer: voxel.SpatialHash{},
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	id := uuid.New()
	logger := o.logger.WithID(id.String()).WithLevels(o.cfg.Levels, o.cfg.FeaturesPerLevel)
	ctx := context.Background()

	if err := box.Validate(); err != nil {
		err = translateError(err)
		logger.LogInit(ctx, nil, 0, err)
		return nil, err
	}
	if err := o.cfg.Validate(); err != nil {
		logger.LogInit(ctx, nil, 0, err)
		return nil, err
	}

	start := time.Now()

	log2 := uint(o.cfg.Log2HashmapSize)
	elems, err := table.Size(o.cfg.Levels, log2, o.cfg.FeaturesPerLevel)
	if err != nil {
		err = &ConfigError{Field: "table_shape", Value: o.cfg.OutDim(), Reason: err.Error(), cause: err}
		logger.LogInit(ctx, nil, 0, err)
		return nil, err
	}
	if err := o.rc.ReserveMemory(int64(elems) * 4); err != nil {
		err = translateError(err)
		logger.LogInit(ctx, nil, 0, err)
		return nil, err
	}

	tables, err := table.NewArena(o.cfg.Levels, log2, o.cfg.FeaturesPerLevel)
	if err != nil {
		o.rc.ReleaseMemory(int64(elems) * 4)
		err = &ConfigError{Field: "table_shape", Value: o.cfg.OutDim(), Reason: err.Error(), cause: err}
		logger.LogInit(ctx, nil, 0, err)
		return nil, err
	}
	if s := o.cfg.InitScale; s > 0 {
		tables.FillUniform(rng.New(o.cfg.Seed), -s, s)
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunkSize := o.chunkSize
	if chunkSize <= 0 {
		chunkSize = pointsPerLane * simd.Lanes()
	}

	e := &Encoder{
		id:          id,
		cfg:         o.cfg,
		box:         box,
		growth:      o.cfg.Growth(),
		resolutions: o.cfg.Resolutions(),
		log2:        log2,
		outDim:      o.cfg.OutDim(),
		indexer:     o.indexer,
		tables:      tables,
		workers:     workers,
		chunkSize:   chunkSize,
		rc:          o.rc,
		logger:      logger,
		metrics:     o.metrics,
	}

	e.metrics.RecordInit(tables.Bytes(), time.Since(start))
	e.logger.LogInit(ctx, e.resolutions, tables.Bytes(), nil)

	return e, nil
}

// ID returns the unique identifier of this encoder instance.
func (e *Encoder) ID() uuid.UUID { return e.id }

// Config returns the configuration the encoder was built with.
func (e *Encoder) Config() Config { return e.cfg }

// BoundingBox returns the scene bounds.
func (e *Encoder) BoundingBox() geom.BoundingBox { return e.box }

// OutDim returns the encoded vector length, Levels * FeaturesPerLevel.
func (e *Encoder) OutDim() int { return e.outDim }

// NumLevels returns the number of resolution levels.
func (e *Encoder) NumLevels() int { return len(e.resolutions) }

// Growth returns the per-level resolution factor.
func (e *Encoder) Growth() float64 { return e.growth }

// Resolutions returns a copy of the per-level grid resolutions.
func (e *Encoder) Resolutions() []int { return slices.Clone(e.resolutions) }

// Table returns the learned feature table of level i.
// The table is mutable; see Encoder for the update contract.
func (e *Encoder) Table(level int) *table.Table { return e.tables.Level(level) }

// Tables returns the arena holding every level's table.
func (e *Encoder) Tables() *table.Arena { return e.tables }

// Close releases the table memory reserved with the resource controller.
// Encoding after Close returns ErrClosed; the tables stay readable.
func (e *Encoder) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.rc.ReleaseMemory(e.tables.Bytes())
	e.logger.LogClose(context.Background(), e.tables.Bytes())
	return nil
}
