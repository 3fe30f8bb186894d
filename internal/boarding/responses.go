package boarding

// responses.go provides helper functions for sending HTTP responses from the
// pass-signing API handlers.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/eliteair/pass-signing-service/internal/logger"
)

// StatusCode maps an API error code to its HTTP status.
func StatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError sends the JSON error envelope for the given error.
//
// The full error detail (including any wrapped cause) is logged server-side;
// the client receives only the short sanitized message. Errors that are not
// APIErrors are treated as internal - they are never expected to reach this
// function unmapped, so the occurrence is logged as a bug.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	requestID := middleware.GetReqID(r.Context())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		reqLogger.Error("BUG: unmapped error type in RespondWithError",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		apiErr = &APIError{code: ErrCodeInternal, message: "Internal server error", wrapped: err}
	}

	statusCode := StatusCode(apiErr.Code())

	reqLogger.Warn("Request failed",
		slog.String("error", apiErr.Error()),
		slog.Int("status_code", statusCode),
		slog.String("request_id", requestID),
	)

	RespondWithJSONPayload(w, statusCode, ErrorResponse{Error: apiErr.Message()})
}

// RespondWithJSONPayload sends a JSON response with the given status code
func RespondWithJSONPayload(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// headers are already written; log and move on
			slog.Error("Failed to encode JSON response",
				slog.String("error", err.Error()),
			)
		}
	}
}

// RespondWithPassBundle sends a signed pass bundle as a binary attachment.
func RespondWithPassBundle(w http.ResponseWriter, bundle []byte) {
	w.Header().Set("Content-Type", "application/vnd.apple.pkpass")
	w.Header().Set("Content-Disposition", `attachment; filename=boarding.pkpass`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(bundle); err != nil {
		slog.Error("Failed to write pass bundle response",
			slog.String("error", err.Error()),
		)
	}
}
