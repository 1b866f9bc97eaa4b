// Package logging configures the process-wide slog logger: JSON to stdout,
// optionally fanned out to a handler that persists ERROR+ records.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps debug/info/warn/error onto slog levels. Unknown values fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewJSONHandler is the stdout handler used by Setup.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup initializes the global slog logger with JSON output to stdout. Extra
// handlers receive every record alongside stdout.
func Setup(level string, extra ...slog.Handler) {
	var handler slog.Handler = NewJSONHandler(os.Stdout, ParseLevel(level))
	if len(extra) > 0 {
		handler = NewFanOut(append([]slog.Handler{handler}, extra...)...)
	}
	slog.SetDefault(slog.New(handler))
}
