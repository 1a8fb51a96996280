// Package log provides structured logging for kinetic.
// It wraps slog with a text handler in development and JSON in production.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
// Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init configures the package logger writing to stderr.
// KINETIC_ENV=production selects the JSON handler.
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter configures the package logger writing to w. Tests use it to
// capture output.
func InitWriter(w io.Writer, level string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if os.Getenv("KINETIC_ENV") == "production" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	logger = slog.New(h).With("lib", "kinetic")
	mu.Unlock()
}

// L returns the package logger, initialising it at info level on first use.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		Init("info")
		mu.Lock()
		l = logger
		mu.Unlock()
	}
	return l
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
