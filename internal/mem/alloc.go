package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of returned buffers (one cache line, one
// AVX-512 register).
const Alignment = 64

// alignedBytes returns size bytes starting at an address divisible by
// Alignment. The backing array is over-allocated by Alignment bytes.
func alignedBytes(size int) []byte {
	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // alignment needs the address
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Float32s returns a zeroed float32 slice of length n whose first element is
// 64-byte aligned. n <= 0 returns nil.
func Float32s(n int) []float32 {
	if n <= 0 {
		return nil
	}
	b := alignedBytes(n * 4)
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n) //nolint:gosec // 64-byte aligned implies 4-byte aligned
}

// IsAligned reports whether the first element of s is 64-byte aligned.
func IsAligned(s []float32) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%Alignment == 0 //nolint:gosec // alignment check
}
