// Package observability builds the process logger.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logs go to stderr; stdout carries command output.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Init replaces the global logger with one at the given level.
func Init(w io.Writer, level slog.Level) *slog.Logger {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger
}

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}
