package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Pow2 returns 2^exp as an int.
func Pow2(exp uint) (int, error) {
	if exp >= 63 {
		return 0, fmt.Errorf("integer overflow: 2^%d does not fit in int64", exp)
	}
	return Uint64ToInt(uint64(1) << exp)
}

// MulInt returns a*b for non-negative a and b, failing on overflow.
func MulInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("integer overflow: negative operand in %d*%d", a, b)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, fmt.Errorf("integer overflow: %d*%d does not fit in uint64", a, b)
	}
	return Uint64ToInt(lo)
}
