// Package logging wires structured logging: JSON to stdout, plus an async
// Postgres sink for ERROR records with daily retention cleanup.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global JSON logger. LOG_LEVEL (debug|info|warn|error)
// overrides the default info level.
func Setup() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
