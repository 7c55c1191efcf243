// Package logger holds the process-wide diagnostic logger.
//
// Records are discarded until Enable is called, so packages can log request
// details without mixing them into status output.
package logger

import (
	"io"
	"log/slog"
)

var log = discard()

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Enable emits debug records as text to w.
func Enable(w io.Writer) {
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Disable drops all records again.
func Disable() {
	log = discard()
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}
