package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

var (
	logger  *slog.Logger
	current LogLevel
)

// Setup installs the process logger. Output goes to stderr so it never
// mixes with the program's own output on stdout.
func Setup(optslevel LogLevel) {
	SetupWriter(optslevel, os.Stderr)
}

func SetupWriter(optslevel LogLevel, sink io.Writer) {
	current = optslevel
	if optslevel == LogLevelNone {
		sink = io.Discard
	}

	level := slog.LevelDebug
	if optslevel == LogLevelInfo {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
}

// Enabled reports whether a message at level would be written. Hot paths
// check it before building attributes.
func Enabled(level LogLevel) bool {
	if logger == nil || current == LogLevelNone {
		return false
	}
	switch level {
	case LogLevelDebug:
		return logger.Enabled(context.Background(), slog.LevelDebug)
	case LogLevelInfo:
		return logger.Enabled(context.Background(), slog.LevelInfo)
	}
	return false
}
