// =============================================================================
// XML to CSV Converter - Logging Module
// =============================================================================
//
// This module builds the structured logger passed to the converter.
//
// CONFIGURATION:
//   log_level:  debug | info | warn | error (default warn)
//   log_format: text | json (default text)
//
// The log is written to stderr, apart from the console summary on stdout.
// At the default level a normal run logs nothing; --verbose lowers the level
// to debug.
//
// =============================================================================

// Package logging builds the structured logger used by the converter.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
)

// New creates a slog logger writing to w according to cfg.
func New(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(handler), nil
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Discard returns a logger that drops everything. Used by tests and callers
// that do not care about diagnostics.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
