package core

import "log/slog"

// NopLogger returns a logger that discards every record.
// Components that accept a *slog.Logger fall back to it when given nil.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LoggerOrNop returns l, or a discarding logger when l is nil
func LoggerOrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return NopLogger()
	}
	return l
}
