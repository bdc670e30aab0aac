package simd

var lerpImpl = lerpGeneric

// selectKernels binds the kernel implementations for activeISA.
func selectKernels() {
	if Lanes() > 1 {
		lerpImpl = lerpUnrolled
		return
	}
	lerpImpl = lerpGeneric
}

// Lerp writes a*(1-w) + b*w into dst.
//
// SAFETY: This function assumes len(a) == len(b) == len(dst).
// Callers MUST ensure lengths match.
func Lerp(dst, a, b []float32, w float32) {
	lerpImpl(dst, a, b, w)
}

// LerpInPlace overwrites a with a*(1-w) + b*w.
func LerpInPlace(a, b []float32, w float32) {
	lerpImpl(a, a, b, w)
}

// The a*(1-w) + b*w form returns a exactly at w=0 and b exactly at w=1.
func lerpGeneric(dst, a, b []float32, w float32) {
	u := 1 - w
	for i := range dst {
		dst[i] = a[i]*u + b[i]*w
	}
}

func lerpUnrolled(dst, a, b []float32, w float32) {
	u := 1 - w
	n := len(dst)
	a = a[:n]
	b = b[:n]

	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i]*u + b[i]*w
		dst[i+1] = a[i+1]*u + b[i+1]*w
		dst[i+2] = a[i+2]*u + b[i+2]*w
		dst[i+3] = a[i+3]*u + b[i+3]*w
	}
	for ; i < n; i++ {
		dst[i] = a[i]*u + b[i]*w
	}
}
