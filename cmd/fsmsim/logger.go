package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// setupLogger builds an slog logger backed by a charmbracelet handler at
// the requested level.
func setupLogger(logLevel string) *slog.Logger {
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "debug":
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	return slog.New(handler)
}
