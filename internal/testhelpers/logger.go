// Package testhelpers provides shared utilities for package tests.
package testhelpers

import (
	"io"
	"log/slog"
)

// NewLogger creates a logger writing to the given sink such as io.Discard.
func NewLogger(sink io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
