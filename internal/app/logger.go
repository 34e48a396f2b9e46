package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/safetylog-backend/internal/config"
)

// NewLogger creates the process logger on os.Stderr and installs it as the
// slog default. Every record carries the service name and build version.
//
// Format "json" produces structured output for production; "text" is
// human-readable with source locations for development.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(
		slog.String("service", "safetylog-api"),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
