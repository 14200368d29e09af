package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLogger returns a slog logger writing to stderr through a charmbracelet
// handler at the given level.
func newLogger(level string) (*slog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	h := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "memctl",
		Level:           lvl,
		ReportTimestamp: true,
	})
	return slog.New(h), nil
}
