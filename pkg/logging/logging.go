// Package logging configures structured logging for the server.
//
// Usage:
//
//	logging.Setup(os.Stderr, "info", "text") // colored tint output
//	logging.Setup(os.Stdout, "debug", "json") // JSON lines for log shippers
//
// Levels: debug, info, warn, error (default: info).
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup builds a logger for w at the given level and format, installs it as
// the slog default and returns it.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := slog.New(NewHandler(w, ParseLevel(level), format))
	slog.SetDefault(logger)
	return logger
}

// NewHandler returns a JSON handler for format "json" and a colored tint
// handler otherwise.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
