//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	cpuFeatures.asimd = cpu.ARM64.HasASIMD
	detect()
}
