// Package voxel maps a 3D point to the grid cell that contains it at a given
// resolution and to the feature-table slots of the cell's 8 corners.
//
// # Corner Order
//
// Corner c of a cell has the integer offset (c>>2&1, c>>1&1, c&1) along
// (x, y, z). Corners c and c+4 differ only in x, c and c+2 only in y, c and
// c+1 only in z:
//
//	0 -> (0,0,0)  1 -> (0,0,1)  2 -> (0,1,0)  3 -> (0,1,1)
//	4 -> (1,0,0)  5 -> (1,0,1)  6 -> (1,1,0)  7 -> (1,1,1)
//
// # Indexers
//
//   - SpatialHash: dense addressing while every corner vertex of the grid fits
//     into the table, the XOR prime hash otherwise. This is the default.
//   - XORHash: always the XOR prime hash.
//   - Dense: linear vertex index wrapped by the table size. Useful in tests
//     that need predictable slots.
//
// All indexers are pure functions of their arguments. Collisions in the
// hashed regime are expected and shared slots are resolved by training.
package voxel
