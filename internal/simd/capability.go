package simd

import (
	"os"
	"strings"
)

// EnvOverride names the environment variable that pins the ISA, e.g.
// HASHGRID_SIMD=generic. Unknown or unsupported values are ignored.
const EnvOverride = "HASHGRID_SIMD"

// ISA is a vector instruction set the kernels can be tuned for.
type ISA uint8

const (
	// Generic is the scalar fallback.
	Generic ISA = iota
	// NEON is ARM64 Advanced SIMD (128-bit).
	NEON
	// AVX2 is x86-64 AVX2 with FMA (256-bit).
	AVX2
	// AVX512 is x86-64 AVX-512 F (512-bit).
	AVX512
)

var isaNames = [...]string{
	Generic: "generic",
	NEON:    "neon",
	AVX2:    "avx2",
	AVX512:  "avx512",
}

func (i ISA) String() string {
	if int(i) < len(isaNames) {
		return isaNames[i]
	}
	return "unknown"
}

// ParseISA parses a case-insensitive ISA name.
func ParseISA(s string) (ISA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range isaNames {
		if name == s {
			return ISA(i), true
		}
	}
	return Generic, false
}

// cpuFeatures is filled by the per-architecture init before detect runs.
var cpuFeatures struct {
	asimd  bool
	avx2   bool
	avx512 bool
}

var (
	activeISA  ISA
	overridden bool
)

// detect picks the widest supported ISA unless EnvOverride names a
// supported one, then binds the kernels.
func detect() {
	activeISA, overridden = Generic, false

	if isa, ok := ParseISA(os.Getenv(EnvOverride)); ok && Supported(isa) {
		activeISA, overridden = isa, true
	} else {
		for _, isa := range []ISA{AVX512, AVX2, NEON} {
			if Supported(isa) {
				activeISA = isa
				break
			}
		}
	}

	selectKernels()
}

// Supported reports whether the CPU can run isa.
func Supported(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return cpuFeatures.asimd
	case AVX2:
		return cpuFeatures.avx2
	case AVX512:
		return cpuFeatures.avx512
	}
	return false
}

// ActiveISA returns the ISA the kernels were bound to.
func ActiveISA() ISA { return activeISA }

// Overridden reports whether EnvOverride selected the active ISA.
func Overridden() bool { return overridden }

// Lanes returns the number of float32 lanes per register of the active ISA.
func Lanes() int {
	switch activeISA {
	case AVX512:
		return 16
	case AVX2:
		return 8
	case NEON:
		return 4
	}
	return 1
}
