package slotvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus. Only coarse structural events are reported; per-element
// operations carry no instrumentation overhead.
type MetricsCollector interface {
	// RecordGrow is called after the backing storage grew.
	RecordGrow(oldCap, newCap int)

	// RecordShrink is called after ShrinkToFit released capacity.
	RecordShrink(oldCap, newCap int)

	// RecordCompact is called after a compaction pass. moved is the
	// number of elements that changed slots.
	RecordCompact(moved int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int)              {}
func (NoopMetricsCollector) RecordShrink(int, int)            {}
func (NoopMetricsCollector) RecordCompact(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount         atomic.Int64
	ShrinkCount       atomic.Int64
	CompactCount      atomic.Int64
	CompactMoved      atomic.Int64
	CompactTotalNanos atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap int) {
	b.GrowCount.Add(1)
}

// RecordShrink implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShrink(oldCap, newCap int) {
	b.ShrinkCount.Add(1)
}

// RecordCompact implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompact(moved int, duration time.Duration) {
	b.CompactCount.Add(1)
	b.CompactMoved.Add(int64(moved))
	b.CompactTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:       b.GrowCount.Load(),
		ShrinkCount:     b.ShrinkCount.Load(),
		CompactCount:    b.CompactCount.Load(),
		CompactMoved:    b.CompactMoved.Load(),
		CompactAvgNanos: b.getAvgCompactNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgCompactNanos() int64 {
	count := b.CompactCount.Load()
	if count == 0 {
		return 0
	}
	return b.CompactTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount       int64
	ShrinkCount     int64
	CompactCount    int64
	CompactMoved    int64
	CompactAvgNanos int64
}
