// Package logging provides structured logging configuration using log/slog.
//
// Each invocation of the importer is tagged with a run ID that is
// propagated through the context, so all log entries for one import
// run can be correlated.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// runIDKey is the context key under which the import run ID is stored.
type runIDKey struct{}

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" format when the importer runs under a scheduler that
// collects machine-parsable logs; "text" for interactive use.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRun returns a context carrying the given import run ID.
func WithRun(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// FromContext returns a logger enriched with the run ID, when the
// context carries one.
//
// Usage:
//
//	logger := logging.FromContext(ctx)
//	logger.Info("resolving nodes", "file", path)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if runID, ok := ctx.Value(runIDKey{}).(string); ok && runID != "" {
		logger = logger.With("run_id", runID)
	}

	return logger
}
