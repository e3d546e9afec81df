package httpclient

import (
	"encoding/json"
	"fmt"
)

// Request describes an outbound HTTP request. The target host comes
// from the resolved endpoint passed to Do, not from the request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE, ...).
	Method string
	// Path is joined to the endpoint's base URL.
	Path string
	// Headers are request-specific headers (merged over client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or
	// any value that will be JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per key.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("httpclient: empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}
