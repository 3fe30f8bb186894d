package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eliteair/pass-signing-service/internal/logger"
)

// RequestLogging attaches a request-scoped logger (carrying the chi request
// id) to the context and logs one line per completed request.
//
// Request bodies are never logged - /sign payloads contain passenger names.
func RequestLogging(appLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := appLogger.With(
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
			ctx := logger.ContextWithRequestLogger(r.Context(), reqLogger)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
