package slotvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with slotvec-specific helpers. The container only
// logs coarse structural events: growth, compaction and clearing. Per-element
// operations are never logged.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogGrow logs a capacity growth.
func (l *Logger) LogGrow(oldCap, newCap int) {
	l.Debug("capacity grown",
		"old_capacity", oldCap,
		"new_capacity", newCap,
	)
}

// LogCompact logs a compaction pass. kind is "ordered" or "reordering".
func (l *Logger) LogCompact(kind string, moved int) {
	l.Debug("compaction completed",
		"kind", kind,
		"moved", moved,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(removed int) {
	l.Debug("container cleared",
		"removed", removed,
	)
}
