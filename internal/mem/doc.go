// Package mem allocates 64-byte aligned float32 buffers for the feature
// tables, so every level starts on a cache line and vector loads never split.
package mem
