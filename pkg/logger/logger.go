package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init configures the process-wide logger from the observability settings.
// Blank level/format fall back by environment: production means JSON at info,
// everything else human-readable text at debug.
func Init(env, level, format string) {
	if format == "" {
		format = "text"
		if env == "production" {
			format = "json"
		}
	}
	if level == "" {
		level = "debug"
		if env == "production" {
			level = "info"
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// L returns the process logger, lazily initializing a development one so
// early callers never hit a nil logger.
func L() *slog.Logger {
	if defaultLogger == nil {
		Init("development", "", "")
	}
	return defaultLogger
}
