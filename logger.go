package fcmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogInit logs the initial cluster centers of a run.
func (l *Logger) LogInit(ctx context.Context, source string, centers [][]float64) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for j, c := range centers {
		l.DebugContext(ctx, "initial center",
			"source", source,
			"cluster", j,
			"position", c,
		)
	}
}

// LogIteration logs a completed refinement iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift, objective float64, duration time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"shift", shift,
		"objective", objective,
		"duration", duration,
	)
}

// LogProgress logs run progress.
func (l *Logger) LogProgress(ctx context.Context, iteration, total int, objective float64) {
	l.InfoContext(ctx, "clustering progress",
		"iteration", iteration,
		"total", total,
		"objective", objective,
	)
}

// LogRun logs a finished clustering run.
func (l *Logger) LogRun(ctx context.Context, points, iterations int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"points", points,
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"points", points,
			"iterations", iterations,
			"duration", duration,
		)
	}
}

// LogDataset logs the shape of a loaded dataset.
func (l *Logger) LogDataset(ctx context.Context, location string, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reading dataset failed",
			"location", location,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"location", location,
			"columns", cols,
			"rows", rows,
		)
	}
}

// LogWrite logs a written output matrix.
func (l *Logger) LogWrite(ctx context.Context, kind, location string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "writing output failed",
			"kind", kind,
			"location", location,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "output written",
			"kind", kind,
			"location", location,
			"rows", rows,
		)
	}
}
