// Package testutil provides testing utilities for hashgrid.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for query points and view directions.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.PointsInBox(1024, box, 0)      // uniform inside box
//	out := rng.PointsInBox(1024, box, 0.25)   // box grown by 25% per side
//	dirs := rng.UnitDirections(64)            // uniform on the sphere
package testutil
