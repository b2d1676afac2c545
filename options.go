package slotvec

import "github.com/hupe1980/slotvec/core"

// Options configures a SlotVec at construction time.
type Options[T any] struct {
	// Core selects the storage backend. Nil means the default bit-tracked
	// core (core.NewDefault).
	Core core.Core[T]

	// Capacity pre-reserves exactly this many slots so that the first
	// Capacity pushes do not reallocate. Zero means no allocation until
	// the first push.
	Capacity int

	// Logger receives coarse structural events (growth, compaction,
	// clear). Defaults to the noop logger.
	Logger *Logger

	// Metrics receives operational metrics for the same events. Defaults
	// to NoopMetricsCollector.
	Metrics MetricsCollector
}

// WithCore selects the storage backend.
//
//	sv := slotvec.New[string](slotvec.WithCore[string](core.NewTaggedCore[string]()))
func WithCore[T any](c core.Core[T]) func(o *Options[T]) {
	return func(o *Options[T]) {
		o.Core = c
	}
}

// WithCapacity pre-reserves capacity for n elements.
func WithCapacity[T any](n int) func(o *Options[T]) {
	return func(o *Options[T]) {
		o.Capacity = n
	}
}

// WithLogger sets the logger. Nil restores the noop logger.
func WithLogger[T any](l *Logger) func(o *Options[T]) {
	return func(o *Options[T]) {
		if l == nil {
			l = NoopLogger()
		}
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector. Nil restores the noop collector.
func WithMetrics[T any](m MetricsCollector) func(o *Options[T]) {
	return func(o *Options[T]) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.Metrics = m
	}
}
