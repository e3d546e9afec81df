package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transport/availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service returned a transient
	// server-side failure (5xx, 429).
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates the endpoint could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request or discovery lookup timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Discovery errors
const (
	// ErrCodeDiscoveryUnavailable indicates the discovery backend failed and
	// no cached or fallback endpoints exist for the service.
	ErrCodeDiscoveryUnavailable ErrorCode = "DISCOVERY_UNAVAILABLE"
	// ErrCodeNoHealthyEndpoint indicates discovery resolved an empty
	// endpoint set for the service.
	ErrCodeNoHealthyEndpoint ErrorCode = "NO_HEALTHY_ENDPOINT"
	// ErrCodeRetriesExhausted indicates every retry attempt failed.
	ErrCodeRetriesExhausted ErrorCode = "RETRIES_EXHAUSTED"
)

// Caller errors (never retried)
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the request was malformed or rejected
	// by validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUnauthorized indicates authentication was rejected.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeConflict indicates a conflict with the current resource state.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Local errors
const (
	// ErrCodeConfig indicates invalid client configuration.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrCodeInternal indicates an unexpected client-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
