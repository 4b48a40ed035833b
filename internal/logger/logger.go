package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alkime/storyform/internal/config"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	logger := New(os.Stdout, cfg)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// New builds the JSON logger without installing it as the default.
func New(w io.Writer, cfg *config.Config) *slog.Logger {
	// Determine log level
	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "error" {
		logLevel = slog.LevelError
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
