// Package simd provides the float32 kernels used by trilinear blending.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON
//
// Runtime CPU feature detection (golang.org/x/sys/cpu) selects the kernel
// width. The kernels are written in Go; wide ISAs use an unrolled variant the
// compiler schedules onto the vector units. Set HASHGRID_SIMD=generic to force
// the scalar loop.
//
// # Operations
//
//   - Lerp: dst = a*(1-w) + b*w
//   - LerpInPlace: a = a*(1-w) + b*w
//   - Lanes: float32 lanes per vector register of the active ISA
package simd
