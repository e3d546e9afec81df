package client

import (
	"context"
	"net/http"

	"github.com/nwilkens/triton-go/httpclient"
	"github.com/nwilkens/triton-go/triton"
)

// RequestOption configures a single request.
type RequestOption func(*httpclient.Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQuery adds a query parameter to the request.
func WithQuery(key, value string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithQueryParams merges a parameter map into the request query.
func WithQueryParams(params map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		if len(params) == 0 {
			return
		}
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// Get performs a GET against service and decodes the JSON response.
func Get[T any](ctx context.Context, c *Client, service triton.Service, path string, opts ...RequestOption) (T, error) {
	return Exchange[T](ctx, c, service, http.MethodGet, path, nil, opts...)
}

// Post performs a POST with a JSON body and decodes the response.
func Post[T any](ctx context.Context, c *Client, service triton.Service, path string, body any, opts ...RequestOption) (T, error) {
	return Exchange[T](ctx, c, service, http.MethodPost, path, body, opts...)
}

// Put performs a PUT with a JSON body and decodes the response.
func Put[T any](ctx context.Context, c *Client, service triton.Service, path string, body any, opts ...RequestOption) (T, error) {
	return Exchange[T](ctx, c, service, http.MethodPut, path, body, opts...)
}

// Delete performs a DELETE and discards any response body.
func Delete(ctx context.Context, c *Client, service triton.Service, path string, opts ...RequestOption) error {
	req := httpclient.Request{Method: http.MethodDelete, Path: path}
	for _, opt := range opts {
		opt(&req)
	}
	_, err := c.Do(ctx, service, req)
	return err
}

// Exchange performs an arbitrary method and decodes the JSON response
// into T. An empty response body yields the zero value.
func Exchange[T any](ctx context.Context, c *Client, service triton.Service, method, path string, body any, opts ...RequestOption) (T, error) {
	var zero T

	req := httpclient.Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, service, req)
	if err != nil {
		return zero, err
	}
	if len(resp.Body) == 0 {
		return zero, nil
	}

	var out T
	if err := resp.Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}
