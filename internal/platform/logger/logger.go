package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger. Dev environments log at debug level.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
