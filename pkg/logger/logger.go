package logger

import (
	"io"
	"log/slog"
	"os"

	"storefront/configs"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// NewLogger builds the application slog logger for the configured
// environment. Local and dev log debug, prod logs info; all environments
// write JSON to stdout plus a log file when one can be opened.
func NewLogger(cfg *configs.Config) *slog.Logger {
	level := slog.LevelDebug
	path := "logs/storefront.log"

	switch cfg.Env {
	case envDev, envProd:
		path = "/var/log/storefront.log"
		if cfg.Env == envProd {
			level = slog.LevelInfo
		}
	case envLocal:
	}

	out, err := newMultiWriter(path)
	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
	if err != nil {
		log.Warn("log file unavailable, logging to stdout only", "path", path, "error", err)
	}
	return log
}

// NewTestLogger discards everything; used from package tests.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMultiWriter(path string) (io.Writer, error) {
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0660)
	if err != nil {
		return os.Stdout, err
	}
	return io.MultiWriter(os.Stdout, logFile), nil
}
