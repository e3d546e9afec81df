package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Transport identifies how an endpoint is reached.
type Transport string

// Known transports.
const (
	TransportHTTP  Transport = "http"
	TransportHTTPS Transport = "https"
	TransportLDAP  Transport = "ldap"
	TransportLDAPS Transport = "ldaps"
)

// Endpoint is one reachable instance of a logical service.
type Endpoint struct {
	// Service is the logical service name the endpoint implements.
	Service string
	// URL is the base address, scheme://host:port.
	URL string
	// Transport is derived from the URL scheme.
	Transport Transport
	// Available is the advisory health flag. Selection prefers available
	// endpoints but never excludes on this flag alone.
	Available bool
	// LastHealthy is when the endpoint last served a successful request.
	// Zero until the first recorded success.
	LastHealthy time.Time
}

// ParseEndpoint builds an Endpoint from a raw URL. The scheme defaults to
// http when absent; a port is required only by the caller's transport.
func ParseEndpoint(service, raw string) (Endpoint, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q for %s: %w", raw, service, err)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q for %s: missing host", raw, service)
	}

	transport := Transport(strings.ToLower(u.Scheme))
	switch transport {
	case TransportHTTP, TransportHTTPS, TransportLDAP, TransportLDAPS:
	default:
		return Endpoint{}, fmt.Errorf("invalid endpoint %q for %s: unsupported scheme %q", raw, service, u.Scheme)
	}

	return Endpoint{
		Service:   service,
		URL:       fmt.Sprintf("%s://%s", transport, u.Host),
		Transport: transport,
		Available: true,
	}, nil
}

// ParseEndpoints converts raw URLs into endpoints, preserving order.
func ParseEndpoints(service string, raws []string) ([]Endpoint, error) {
	eps := make([]Endpoint, 0, len(raws))
	for _, raw := range raws {
		ep, err := ParseEndpoint(service, raw)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, nil
}

// Discoverer maps a logical service name to its current endpoint set.
// Implementations are supplied by the caller (SAPI lookup, static table,
// test doubles).
type Discoverer interface {
	Discover(ctx context.Context, service string) ([]Endpoint, error)
}

// DiscovererFunc adapts a function to the Discoverer interface.
type DiscovererFunc func(ctx context.Context, service string) ([]Endpoint, error)

// Discover calls f.
func (f DiscovererFunc) Discover(ctx context.Context, service string) ([]Endpoint, error) {
	return f(ctx, service)
}
