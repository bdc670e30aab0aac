//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	cpuFeatures.avx2 = cpu.X86.HasAVX2 && cpu.X86.HasFMA
	cpuFeatures.avx512 = cpu.X86.HasAVX512F && cpuFeatures.avx2
	detect()
}
