package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error is the unified client error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status code of the failing response, 0 for
	// connection-level and local errors.
	HTTPStatus int `json:"-"`
	// Service names the logical service involved, when known.
	Service string `json:"service,omitempty"`
	// Attempts is the number of attempts made before the error was
	// surfaced. Only set for RETRIES_EXHAUSTED.
	Attempts int `json:"attempts,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// New creates an Error with automatic retryable detection from the code.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// --- Constructors ---

// DiscoveryUnavailable reports that the discovery backend failed for a
// service and no cache entry or fallback was configured.
func DiscoveryUnavailable(service string, cause error) *Error {
	return &Error{
		Code:    ErrCodeDiscoveryUnavailable,
		Message: fmt.Sprintf("no endpoints available for %s: discovery failed and no fallback configured", service),
		Service: service,
		Cause:   cause,
	}
}

// NoHealthyEndpoint reports an empty endpoint set for a service.
func NoHealthyEndpoint(service string) *Error {
	return &Error{
		Code:    ErrCodeNoHealthyEndpoint,
		Message: fmt.Sprintf("endpoint set for %s is empty", service),
		Service: service,
	}
}

// RetriesExhausted reports that every attempt against a service failed.
// It carries the attempt count and the last underlying failure so callers
// can tell a down service from misconfigured discovery.
func RetriesExhausted(service string, attempts int, last error) *Error {
	return &Error{
		Code:     ErrCodeRetriesExhausted,
		Message:  fmt.Sprintf("%s request failed after %d attempts", service, attempts),
		Service:  service,
		Attempts: attempts,
		Cause:    last,
	}
}

// ConnectionFailed reports a failed connection to an endpoint.
func ConnectionFailed(service string, cause error) *Error {
	return &Error{
		Code:      ErrCodeConnectionFailed,
		Message:   fmt.Sprintf("unable to connect to %s", service),
		Retryable: true,
		Service:   service,
		Cause:     cause,
	}
}

// Timeout reports an operation that exceeded its deadline.
func Timeout(operation string, cause error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("%s timed out", operation),
		Retryable: true,
		Cause:     cause,
	}
}

// ServiceUnavailable reports a transient server-side failure.
func ServiceUnavailable(service string, httpStatus int) *Error {
	return &Error{
		Code:       ErrCodeServiceUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable (HTTP %d)", service, httpStatus),
		Retryable:  true,
		HTTPStatus: httpStatus,
		Service:    service,
	}
}

// NotFound reports a missing resource.
func NotFound(resource string) *Error {
	return &Error{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidInput reports a malformed request.
func InvalidInput(reason string) *Error {
	return &Error{
		Code:       ErrCodeInvalidInput,
		Message:    reason,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized reports rejected authentication.
func Unauthorized(service string) *Error {
	return &Error{
		Code:       ErrCodeUnauthorized,
		Message:    fmt.Sprintf("authentication rejected by %s", service),
		HTTPStatus: http.StatusUnauthorized,
		Service:    service,
	}
}

// Conflict reports a conflict with current resource state.
func Conflict(reason string) *Error {
	return &Error{
		Code:       ErrCodeConflict,
		Message:    reason,
		HTTPStatus: http.StatusConflict,
	}
}

// Config reports invalid client configuration.
func Config(reason string) *Error {
	return &Error{Code: ErrCodeConfig, Message: reason}
}

// Internal reports an unexpected client-side failure.
func Internal(reason string, cause error) *Error {
	return &Error{Code: ErrCodeInternal, Message: reason, Cause: cause}
}

// --- Classification helpers ---

// IsRetryable reports whether err should be retried. Classification rules:
// a typed *Error answers for itself; anything else is not retried.
func IsRetryable(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// CodeOf returns the error code carried by err, or ErrCodeInternal when
// err is not a typed *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// AsError converts err to an *Error if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
