package benchmark_test

import (
	"runtime"
	"testing"
)

// WarmupIterations is the number of warmup iterations before measurement.
const WarmupIterations = 10

// BenchLoop runs fn with a warmup phase and a GC before measuring b.N
// iterations. fn receives i % batchCount so callers can cycle through
// prepared inputs.
func BenchLoop(b *testing.B, batchCount int, fn func(i int)) {
	b.Helper()

	for i := 0; i < WarmupIterations; i++ {
		fn(i % batchCount)
	}

	runtime.GC()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fn(i % batchCount)
	}
}

// reportPointRate reports encoded points per second for n points per iteration.
func reportPointRate(b *testing.B, n int) {
	b.Helper()
	if sec := b.Elapsed().Seconds(); sec > 0 {
		b.ReportMetric(float64(n)*float64(b.N)/sec, "points/s")
	}
}
