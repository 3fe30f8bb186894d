// Package logger configures the application's structured logging.
//
// In dev environments logs are rendered with tint for readability; in prod
// they are emitted as JSON for log aggregation. Handlers and middleware can
// retrieve a request-scoped logger from the request context - it carries the
// request id assigned by the chi RequestID middleware.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

type contextKey int

const requestLoggerKey contextKey = iota

// ParseLogLevel converts a level name to a slog.Level. Unrecognized names
// fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger creates the application logger and installs it as the slog
// default so that library code logging via slog ends up in the same stream.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	switch environment {
	case "dev", "test":
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	appLogger := slog.New(handler)
	slog.SetDefault(appLogger)
	return appLogger
}

// ContextWithRequestLogger stores a request-scoped logger in the context.
// The request logging middleware calls this once per request after attaching
// the request id.
func ContextWithRequestLogger(ctx context.Context, reqLogger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, reqLogger)
}

// ContextRequestLogger returns the request-scoped logger stored in the
// context, or the process default logger when called outside a request.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if reqLogger, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok {
		return reqLogger
	}
	return slog.Default()
}
