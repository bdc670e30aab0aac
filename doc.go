// Package hashgrid implements a multiresolution hash encoding of 3D points.
//
// A point inside a scene bounding box is located in a stack of L regular grids
// whose resolutions grow geometrically from BaseResolution to FinestResolution.
// At every level the eight corners of the enclosing voxel are mapped to rows of
// a learned feature table, either one-to-one when the grid fits the table or
// through a spatial hash when it does not. The corner rows are blended
// trilinearly and the per-level results are concatenated into a vector of
// length Levels * FeaturesPerLevel.
//
// # Quick Start
//
//	box := geom.UnitBox()
//	enc, err := hashgrid.New(box,
//		hashgrid.WithLevels(16),
//		hashgrid.WithFeaturesPerLevel(2),
//		hashgrid.WithLog2HashmapSize(19),
//		hashgrid.WithSeed(42),
//	)
//	if err != nil {
//		return err
//	}
//	defer enc.Close()
//
//	features, err := enc.Encode(ctx, points) // len(features[i]) == enc.OutDim()
//
// Or with the builder:
//
//	enc, err := hashgrid.NewBuilder(box).
//		Levels(8).
//		Resolutions(16, 256).
//		Workers(4).
//		Build()
//
// # Learned Parameters
//
// The feature tables are exposed through Table and Tables so that an external
// optimizer can update them between encode passes. Encoding only reads the
// tables; updates must not run concurrently with Encode.
//
// # View Directions
//
// NewDirectionalEncoder returns a spherical-harmonic encoder (package sh) for
// unit view directions, typically concatenated with the position features.
//
// # Parallelism and Resources
//
// Large batches are split into chunks that run on up to Workers goroutines.
// A shared resource.Controller bounds table memory and worker concurrency
// across many encoders, and can rate-limit the number of encoded points.
//
// # Diagnostics
//
// Occupancy reports, per level, how many distinct grid vertices and table
// slots a point set touches, which shows how lossy the hashed levels are.
// TableStats summarises the values stored in each table.
package hashgrid
