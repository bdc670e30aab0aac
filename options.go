package hashgrid

import (
	"github.com/hupe1980/hashgrid/resource"
	"github.com/hupe1980/hashgrid/voxel"
)

type options struct {
	cfg       Config
	indexer   voxel.Indexer
	logger    *Logger
	metrics   MetricsCollector
	workers   int
	chunkSize int
	rc        *resource.Controller
}

// Option configures the Encoder constructor.
type Option func(*options)

// WithConfig replaces all hyperparameters at once.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLevels sets the number of resolution levels.
func WithLevels(n int) Option {
	return func(o *options) {
		o.cfg.Levels = n
	}
}

// WithFeaturesPerLevel sets the feature vector length per level.
func WithFeaturesPerLevel(n int) Option {
	return func(o *options) {
		o.cfg.FeaturesPerLevel = n
	}
}

// WithLog2HashmapSize sets log2 of the per-level table size.
func WithLog2HashmapSize(n int) Option {
	return func(o *options) {
		o.cfg.Log2HashmapSize = n
	}
}

// WithBaseResolution sets the coarsest grid resolution.
func WithBaseResolution(r float64) Option {
	return func(o *options) {
		o.cfg.BaseResolution = r
	}
}

// WithFinestResolution sets the finest grid resolution.
func WithFinestResolution(r float64) Option {
	return func(o *options) {
		o.cfg.FinestResolution = r
	}
}

// WithSeed sets the table initialisation seed.
// The same seed and configuration always produce the same tables.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.cfg.Seed = seed
	}
}

// WithInitScale sets the half-width s of the uniform initialisation [-s, s].
// Zero yields all-zero tables.
func WithInitScale(s float32) Option {
	return func(o *options) {
		o.cfg.InitScale = s
	}
}

// WithIndexer replaces the voxel indexer.
//
// If nil is passed, voxel.SpatialHash is used.
func WithIndexer(ix voxel.Indexer) Option {
	return func(o *options) {
		if ix == nil {
			ix = voxel.SpatialHash{}
		}
		o.indexer = ix
	}
}

// WithLogger sets the structured logger.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithWorkers bounds the goroutines used by one encode call.
// Values <= 0 select GOMAXPROCS. 1 encodes on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets the number of points per encode task.
// Values <= 0 select a size derived from the active SIMD width.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithResourceController shares memory, worker and throughput limits
// between encoders.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}
