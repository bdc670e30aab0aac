// Package table stores the learned per-level feature tables of a hash grid.
//
// All levels live in one contiguous float32 Arena. Level i occupies the
// element range [i*rows*features, (i+1)*rows*features) and is addressed by
// index, never by pointer, so the arena can be handed to an optimizer as a
// single flat parameter vector:
//
//	arena := table.NewArena(levels, log2Rows, features)
//	arena.FillUniform(rng, -1e-4, 1e-4)
//	row := arena.Level(3).Row(slot) // aliases arena memory
//
// Tables are read by the encoder and written only by the caller, between
// encode calls. The package does no locking.
package table
