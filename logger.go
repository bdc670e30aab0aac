package hashgrid

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the encoder's field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger on top of handler.
// A nil handler logs text at Info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON records at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return newStreamLogger(os.Stderr, level, true)
}

// NewTextLogger logs key=value records at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return newStreamLogger(os.Stderr, level, false)
}

func newStreamLogger(w io.Writer, level slog.Level, json bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return NewLogger(slog.NewJSONHandler(w, opts))
	}
	return NewLogger(slog.NewTextHandler(w, opts))
}

// NoopLogger discards every record.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithID tags every record with the encoder ID.
func (l *Logger) WithID(id string) *Logger {
	return &Logger{Logger: l.With("encoder_id", id)}
}

// WithLevels tags every record with the level count and per-level width.
func (l *Logger) WithLevels(levels, features int) *Logger {
	return &Logger{Logger: l.With("levels", levels, "features_per_level", features)}
}

// LogInit logs encoder construction at Info, or its failure at Error.
func (l *Logger) LogInit(ctx context.Context, resolutions []int, tableBytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encoder init failed", "error", err)
		return
	}
	l.InfoContext(ctx, "encoder initialized",
		"resolutions", resolutions,
		"table_bytes", tableBytes,
	)
}

// LogEncode logs an encode batch at Debug, or its failure at Error.
func (l *Logger) LogEncode(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed", "points", points, "error", err)
		return
	}
	l.DebugContext(ctx, "encode completed", "points", points)
}

// LogClose logs the release of the feature tables.
func (l *Logger) LogClose(ctx context.Context, releasedBytes int64) {
	l.InfoContext(ctx, "encoder closed", "released_bytes", releasedBytes)
}
