// Package resource limits the memory, worker and throughput budget shared by
// one or more encoders.
//
//   - Memory: feature-table bytes reserved at construction (weighted semaphore)
//   - Workers: concurrent encode tasks across all encoders (weighted semaphore)
//   - Throughput: encoded points per second (token bucket)
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	    MaxWorkers:       8,
//	})
//	a, _ := hashgrid.New(box, hashgrid.WithResourceController(rc))
//	b, _ := hashgrid.New(box, hashgrid.WithResourceController(rc))
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
