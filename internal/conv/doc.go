// Package conv provides checked integer conversions and size arithmetic.
//
// Table sizes are derived from user configuration (2^log2 slots times the
// feature and level counts), so every conversion and product on that path is
// bounds checked instead of silently wrapping.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
