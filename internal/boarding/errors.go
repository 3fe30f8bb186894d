package boarding

// errors.go defines the error taxonomy for the pass-signing API

import "fmt"

// APIError represents a structured error from the boarding API.
type APIError struct {
	// code classifies the failure
	code ErrorCode

	// message is a short, non-leaking description safe to return to the
	// client
	message string

	// wrapped is the optional underlying error - logged server-side, never
	// sent to the client
	wrapped error
}

func (e *APIError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *APIError) Code() ErrorCode { return e.code }
func (e *APIError) Unwrap() error   { return e.wrapped }

// Message returns the sanitized, client-facing description.
func (e *APIError) Message() string { return e.message }

// ErrorCode classifies API failures. Every member maps directly to one HTTP
// status code; internal details (store errors, signing errors) are collapsed
// into ErrCodeInternal.
type ErrorCode int

const (
	// ErrCodeBadRequest is used for malformed or missing client input,
	// including unknown document kinds.
	ErrCodeBadRequest ErrorCode = iota + 1

	// ErrCodeUnauthorized is used when the supplied access code does not
	// match the stored secret.
	ErrCodeUnauthorized

	// ErrCodeNotFound is used when a document kind resolves to an object
	// that does not exist in the bucket.
	ErrCodeNotFound

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware
	ErrCodeRequestTooLarge

	// ErrCodeInternal is used for secret-store failures, signing failures,
	// storage failures and any unexpected error.
	ErrCodeInternal
)

// NewBadRequestError creates an error for malformed or missing client input.
func NewBadRequestError(msg string) error {
	return &APIError{code: ErrCodeBadRequest, message: msg}
}

// WrapBadRequestError wraps an existing error as a bad request error.
func WrapBadRequestError(err error, msg string) error {
	return &APIError{code: ErrCodeBadRequest, message: msg, wrapped: err}
}

// NewUnauthorizedError creates an access-code mismatch error.
func NewUnauthorizedError(msg string) error {
	return &APIError{code: ErrCodeUnauthorized, message: msg}
}

// NewNotFoundError creates an error for a document that does not exist in
// the bucket.
func NewNotFoundError(msg string) error {
	return &APIError{code: ErrCodeNotFound, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
func NewRateLimitError(msg string) error {
	return &APIError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
func NewRequestTooLargeError(msg string) error {
	return &APIError{code: ErrCodeRequestTooLarge, message: msg}
}

// NewInternalError creates an internal error with a generic client message.
func NewInternalError(msg string) error {
	return &APIError{code: ErrCodeInternal, message: msg}
}

// WrapInternalError wraps an existing error as an internal error. The
// wrapped cause is logged server-side only; the client sees msg.
func WrapInternalError(err error, msg string) error {
	return &APIError{code: ErrCodeInternal, message: msg, wrapped: err}
}
