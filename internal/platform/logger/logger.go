// Package logger provides structured logging setup for the gateway.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/avaolo/agri-gateway/internal/config"
)

// Setup initializes the application's logging from configuration. It
// creates a structured JSON logger at the configured level, sets it as
// the process default, and returns it. An unrecognized level falls back
// to info with a warning rather than failing startup.
func Setup(cfg config.ServerConfig) *slog.Logger {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.ServerConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
