package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the run's logger from the -log-level and -log-format
// settings. It never touches the global logger. Level names are the slog
// ones ("debug", "WARN", "info+2"); anything else falls back to info and is
// reported once at warn level.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	var level slog.Level
	levelErr := level.UnmarshalText([]byte(cfg.LogLevel))
	if levelErr != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}

	logger := slog.New(handler)
	if levelErr != nil && cfg.LogLevel != "" {
		logger.Warn("Unknown log level, using info.", "log_level", cfg.LogLevel)
	}
	return logger
}
