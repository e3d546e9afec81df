package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
)

// Client sends single HTTP requests to resolved endpoints. Retry and
// endpoint health tracking live one layer up, in resilience.Executor.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates an HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}, nil
}

// Do executes a single request against ep and returns the response.
// Non-2xx responses come back alongside a classified error so callers
// can still inspect the body.
func (c *Client) Do(ctx context.Context, ep discovery.Endpoint, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, ep, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Timeout(fmt.Sprintf("%s %s", req.Method, req.Path), err)
		}
		return nil, errors.ConnectionFailed(ep.Service, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ConnectionFailed(ep.Service, fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}

	if classErr := ClassifyStatus(ep.Service, resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// Unwrap returns the underlying *http.Client.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// buildRequest constructs an *http.Request from the endpoint, the
// client config and the request.
func (c *Client) buildRequest(ctx context.Context, ep discovery.Endpoint, req Request) (*http.Request, error) {
	url := strings.TrimRight(ep.URL, "/") + "/" + strings.TrimLeft(req.Path, "/")

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Request-level auth overrides client-level.
	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
// A []byte body is taken as pre-encoded JSON; callers sending other raw
// payloads set an explicit Content-Type header, which always wins.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "application/json", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
