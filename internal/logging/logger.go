// Package logging provides structured logging configuration using log/slog.
//
// Loggers returned from this package carry the chi request ID when one is
// present, and the dataset load ID when a load attempt is in progress, so a
// single request or load can be traced across all of its log entries.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type (
	loadIDKey struct{}
	loggerKey struct{}
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. Setup uses it for the process-wide logger;
// the CLI uses it to send logs to stderr.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
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

// ContextWithLoadID tags ctx with the ID of the dataset load it belongs to.
func ContextWithLoadID(ctx context.Context, loadID string) context.Context {
	return context.WithValue(ctx, loadIDKey{}, loadID)
}

// LoadIDFromContext returns the load ID stored by ContextWithLoadID, if any.
func LoadIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(loadIDKey{}).(string)
	return id
}

// ContextWithLogger makes FromContext build on logger instead of slog.Default.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns a logger enriched with request and load context.
//
// Usage:
//
//	func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("series requested", "parties", keys)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		logger = l
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if loadID := LoadIDFromContext(ctx); loadID != "" {
		logger = logger.With("load_id", loadID)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
