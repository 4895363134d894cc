package vecdist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecdist-specific context.
// This provides structured logging with consistent field names.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithDistance adds a distance name field to the logger.
func (l *Logger) WithDistance(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("distance", name),
	}
}

// LogSetup logs the binding of two feature collections.
func (l *Logger) LogSetup(ctx context.Context, lhs, rhs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "setup failed",
			"lhs", lhs,
			"rhs", rhs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "setup completed",
			"lhs", lhs,
			"rhs", rhs,
		)
	}
}
