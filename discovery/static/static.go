// Package static provides a Discoverer backed by an in-memory endpoint
// table. Useful for development environments without a discovery
// service, and as a test double.
package static

import (
	"context"
	"fmt"
	"sync"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
)

// Provider implements discovery.Discoverer over a fixed table of
// endpoints keyed by service name.
type Provider struct {
	mu        sync.RWMutex
	endpoints map[string][]discovery.Endpoint
}

// NewProvider creates a Provider from service-name → URL mappings.
func NewProvider(table map[string][]string) (*Provider, error) {
	p := &Provider{endpoints: make(map[string][]discovery.Endpoint)}
	for service, urls := range table {
		eps, err := discovery.ParseEndpoints(service, urls)
		if err != nil {
			return nil, fmt.Errorf("static provider: %w", err)
		}
		p.endpoints[service] = eps
	}
	return p, nil
}

// Discover returns the configured endpoints for the named service.
func (p *Provider) Discover(_ context.Context, service string) ([]discovery.Endpoint, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	eps, ok := p.endpoints[service]
	if !ok {
		return nil, errors.New(errors.ErrCodeDiscoveryUnavailable,
			fmt.Sprintf("no static endpoints configured for %s", service))
	}
	out := make([]discovery.Endpoint, len(eps))
	copy(out, eps)
	return out, nil
}

// Set replaces the endpoints for a service. Intended for tests that
// simulate topology changes.
func (p *Provider) Set(service string, urls []string) error {
	eps, err := discovery.ParseEndpoints(service, urls)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.endpoints[service] = eps
	p.mu.Unlock()
	return nil
}

var _ discovery.Discoverer = (*Provider)(nil)
