package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewTestLogger creates a quiet logger for tests: WARN and above on stdout.
// Setting TEST_DEBUG lowers the level to DEBUG.
func NewTestLogger() *slog.Logger {
	return NewTestLoggerTo(os.Stdout)
}

// NewTestLoggerTo is NewTestLogger writing to w, for tests that assert on log output.
func NewTestLoggerTo(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
