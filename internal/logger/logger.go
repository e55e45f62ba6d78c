// Package logger builds the process-wide slog root from configuration.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/carbothq/carbot/internal/config"
)

// New returns a logger honoring the configured level and format. Unknown
// values fall back to info-level text output.
func New(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
