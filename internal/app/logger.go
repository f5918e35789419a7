package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/tinywin-backend/internal/config"
)

// NewLogger creates a stderr logger from cfg and installs it as the slog
// default.
//
// Format "json" produces structured JSON. Any other format produces text
// with source locations. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !isJSON(cfg.Format),
	}

	if isJSON(cfg.Format) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isJSON(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "json")
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
