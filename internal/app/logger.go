package app

import (
	"io"
	"log/slog"
)

// parseLevel maps a -log-level value to a slog level. Unknown values fall
// back to warn, the CLI default, so routine runs only log problems.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger builds the logger shared by the app and its registry. Logs go
// to outW, never to the results stream, and the global logger is left
// untouched.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
