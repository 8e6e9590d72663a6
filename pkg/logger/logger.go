package logger

import (
	"log/slog"
	"strings"
)

// New builds a logger at the level named by LOGLEVEL using the given handler
// constructor, e.g. NewCloudRunHandler or NewTestHandler.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	return slog.New(handler(getSlogLevel(level)))
}

// getSlogLevel accepts slog level names with optional offsets ("debug",
// "WARN", "info+2") and the alias "warning". Anything else is info.
func getSlogLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
