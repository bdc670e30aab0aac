package hashgrid

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordInit is called once after construction with the table memory in
	// bytes and the time taken to allocate and initialise the tables.
	RecordInit(tableBytes int64, duration time.Duration)

	// RecordEncode is called after each encode batch.
	// points is the batch size, err is nil if successful.
	RecordEncode(points int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInit(int64, time.Duration)        {}
func (NoopMetricsCollector) RecordEncode(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InitCount        atomic.Int64
	TableBytes       atomic.Int64
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodePoints     atomic.Int64
	EncodeTotalNanos atomic.Int64
}

// RecordInit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInit(tableBytes int64, duration time.Duration) {
	b.InitCount.Add(1)
	b.TableBytes.Add(tableBytes)
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(points int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
		return
	}
	b.EncodePoints.Add(int64(points))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InitCount:      b.InitCount.Load(),
		TableBytes:     b.TableBytes.Load(),
		EncodeCount:    b.EncodeCount.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		EncodePoints:   b.EncodePoints.Load(),
		EncodeAvgNanos: b.getAvgEncodeNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgEncodeNanos() int64 {
	count := b.EncodeCount.Load()
	if count == 0 {
		return 0
	}
	return b.EncodeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InitCount      int64
	TableBytes     int64
	EncodeCount    int64
	EncodeErrors   int64
	EncodePoints   int64
	EncodeAvgNanos int64
}
