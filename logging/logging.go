// Package logging wraps log/slog with the field names the generator uses.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with generator-specific helpers.
type Logger struct {
	*slog.Logger
}

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates a Logger writing to w in the given format at the given level.
// A nil w means os.Stderr.
func New(w io.Writer, format Format, level slog.Level) (*Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch format {
	case FormatText, "":
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	return &Logger{Logger: slog.New(h)}, nil
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))}
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}
	return l, nil
}

// WithCount adds the point count field.
func (l *Logger) WithCount(n int) *Logger {
	return &Logger{Logger: l.Logger.With("n", n)}
}

// WithDest adds the output destination field.
func (l *Logger) WithDest(dest string) *Logger {
	return &Logger{Logger: l.Logger.With("dest", dest)}
}
