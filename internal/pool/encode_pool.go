// Package pool provides object pools for allocation-free batch encoding.
// Uses sync.Pool so every encode task reuses blend scratch space.
package pool

import (
	"sync"

	"github.com/hupe1980/hashgrid/internal/blend"
)

// DefaultFeatures is the feature length pooled contexts are sized for.
// Larger feature vectors grow the scratch on first use.
const DefaultFeatures = 8

// EncodeContext contains the reusable buffers of one encode task.
type EncodeContext struct {
	Blend *blend.Scratch
	// Corners holds the 8 corner rows of the current voxel. The rows alias
	// table memory and are only valid during one blend.
	Corners [8][]float32
}

// encodeContextPool is the global pool of EncodeContext objects.
var encodeContextPool = sync.Pool{
	New: func() interface{} {
		return &EncodeContext{
			Blend: blend.NewScratch(DefaultFeatures),
		}
	},
}

// Get retrieves an EncodeContext from the pool.
func Get() *EncodeContext {
	return encodeContextPool.Get().(*EncodeContext)
}

// Put returns an EncodeContext to the pool for reuse.
func Put(ec *EncodeContext) {
	ec.Reset()
	encodeContextPool.Put(ec)
}

// Reset drops references to table rows so pooled contexts do not pin tables.
func (ec *EncodeContext) Reset() {
	for i := range ec.Corners {
		ec.Corners[i] = nil
	}
}
