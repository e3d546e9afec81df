package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nwilkens/triton-go/errors"
)

// apiError is the restify-style error body Triton services return.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMessage extracts a human-readable message from an error response
// body, falling back to the bare status code.
func errorMessage(statusCode int, body []byte) string {
	var ae apiError
	if len(body) > 0 && json.Unmarshal(body, &ae) == nil && ae.Message != "" {
		if ae.Code != "" {
			return fmt.Sprintf("%s: %s", ae.Code, ae.Message)
		}
		return ae.Message
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// ClassifyStatus converts a non-2xx status code into a typed error.
// Returns nil for 2xx. Rate limiting (429) and server errors (5xx) are
// retryable; the remaining 4xx family is the caller's fault and is not.
func ClassifyStatus(service string, statusCode int, body []byte) *errors.Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	msg := errorMessage(statusCode, body)
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e := errors.Unauthorized(service)
		e.Message = msg
		e.HTTPStatus = statusCode
		return e
	case statusCode == http.StatusNotFound:
		e := errors.New(errors.ErrCodeNotFound, msg)
		e.HTTPStatus = statusCode
		e.Service = service
		return e
	case statusCode == http.StatusConflict:
		e := errors.Conflict(msg)
		e.Service = service
		return e
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		e := errors.ServiceUnavailable(service, statusCode)
		e.Message = msg
		return e
	default:
		e := errors.InvalidInput(msg)
		e.HTTPStatus = statusCode
		e.Service = service
		return e
	}
}
