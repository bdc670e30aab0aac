package hashgrid

import (
	"slices"

	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/resource"
	"github.com/hupe1980/hashgrid/voxel"
)

// Builder is an immutable fluent builder for Encoders.
// Each method returns a new builder with the updated configuration.
//
// Example:
//
//	enc, err := hashgrid.NewBuilder(box).
//	    Levels(16).
//	    FeaturesPerLevel(2).
//	    Log2HashmapSize(19).
//	    Resolutions(16, 512).
//	    Seed(42).
//	    Build()
type Builder struct {
	box  geom.BoundingBox
	opts []Option
}

// NewBuilder starts a builder for the given scene bounds.
func NewBuilder(box geom.BoundingBox) Builder {
	return Builder{box: box}
}

func (b Builder) with(opt Option) Builder {
	b.opts = append(slices.Clip(b.opts), opt)
	return b
}

// Config sets all hyperparameters at once.
func (b Builder) Config(cfg Config) Builder { return b.with(WithConfig(cfg)) }

// Levels sets the number of resolution levels.
// Default: 16.
func (b Builder) Levels(n int) Builder { return b.with(WithLevels(n)) }

// FeaturesPerLevel sets the feature vector length per level.
// Default: 2.
func (b Builder) FeaturesPerLevel(n int) Builder { return b.with(WithFeaturesPerLevel(n)) }

// Log2HashmapSize sets log2 of the per-level table size.
// Default: 19.
func (b Builder) Log2HashmapSize(n int) Builder { return b.with(WithLog2HashmapSize(n)) }

// Resolutions sets the coarsest and finest grid resolutions.
// Default: 16 and 512.
func (b Builder) Resolutions(base, finest float64) Builder {
	return b.with(WithBaseResolution(base)).with(WithFinestResolution(finest))
}

// Seed sets the seed for deterministic table initialisation.
func (b Builder) Seed(seed int64) Builder { return b.with(WithSeed(seed)) }

// InitScale sets the half-width of the uniform table initialisation.
func (b Builder) InitScale(s float32) Builder { return b.with(WithInitScale(s)) }

// Indexer replaces the voxel indexer.
func (b Builder) Indexer(ix voxel.Indexer) Builder { return b.with(WithIndexer(ix)) }

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder { return b.with(WithLogger(l)) }

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder { return b.with(WithMetricsCollector(mc)) }

// Workers bounds the goroutines used by one encode call.
func (b Builder) Workers(n int) Builder { return b.with(WithWorkers(n)) }

// ChunkSize sets the number of points per encode task.
func (b Builder) ChunkSize(n int) Builder { return b.with(WithChunkSize(n)) }

// ResourceController shares limits between encoders.
func (b Builder) ResourceController(rc *resource.Controller) Builder {
	return b.with(WithResourceController(rc))
}

// Build creates the Encoder.
func (b Builder) Build() (*Encoder, error) {
	return New(b.box, b.opts...)
}
