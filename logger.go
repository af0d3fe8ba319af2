package ppjoin

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with ppjoin-specific context.
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

// WithThreshold adds a threshold field to the logger.
func (l *Logger) WithThreshold(t float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("threshold", t),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogJoin logs a single-dataset join.
func (l *Logger) LogJoin(ctx context.Context, records int, stats Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "join failed",
			"records", records,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "join completed",
			"records", records,
			"candidates", stats.Candidates,
			"matches", stats.Matches,
			"duration", stats.Duration,
		)
	}
}

// LogCrossJoin logs a cross-dataset join.
func (l *Logger) LogCrossJoin(ctx context.Context, datasets, matches int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cross-dataset join failed",
			"datasets", datasets,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "cross-dataset join completed",
			"datasets", datasets,
			"matches", matches,
		)
	}
}

// LogMerge logs the merge of matched pairs into consolidated records.
func (l *Logger) LogMerge(ctx context.Context, pairs, merged int, duration time.Duration) {
	l.DebugContext(ctx, "merge completed",
		"pairs", pairs,
		"merged", merged,
		"duration", duration,
	)
}
