package logging

import "log/slog"

// Log writes msg with key/value args at level. Nothing is written before
// Setup or at LogLevelNone; an unrecognised level is logged as a warning
// carrying the level it was given.
func Log(level LogLevel, msg string, args ...any) {
	if logger == nil || level == LogLevelNone {
		return
	}
	switch level {
	case LogLevelDebug:
		logger.Debug(msg, args...)
	case LogLevelInfo:
		logger.Info(msg, args...)
	default:
		logger.Warn(msg, append([]any{slog.String("loglevel", string(level))}, args...)...)
	}
}

// LogErr logs err with msg and args. A nil err is ignored so callers can
// pass the result of a cleanup call directly.
func LogErr(err error, msg string, args ...any) {
	if err == nil || logger == nil {
		return
	}
	logger.Error(msg, append([]any{"error", err.Error()}, args...)...)
}
