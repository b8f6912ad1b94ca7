package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"prompty/internal/config"
)

// Setup initializes the application logger on stderr and installs it as the default.
// Stdout is reserved for reports and chat replies.
func Setup(cfg *config.Config) *slog.Logger {
	logger := New(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w using the configured format and level
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default: // "text" or empty (already validated in config.go)
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With("app", "prompty")
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default: // "info", empty, or anything config.go let through
		return slog.LevelInfo
	}
}
