package sapi

import (
	"context"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/logger"
	"github.com/nwilkens/triton-go/triton"
)

// Discoverer resolves service endpoints through SAPI. It does no
// caching; wrap it in a discovery.Cache.
type Discoverer struct {
	client *Client
	log    *logger.Logger
}

var _ discovery.Discoverer = (*Discoverer)(nil)

// NewDiscoverer creates a SAPI-backed discoverer. A nil log disables
// logging.
func NewDiscoverer(client *Client, log *logger.Logger) *Discoverer {
	if log == nil {
		log = logger.Nop()
	}
	return &Discoverer{
		client: client,
		log:    log.WithComponent("sapi"),
	}
}

// Discover looks up the current endpoints for a service by name.
func (d *Discoverer) Discover(ctx context.Context, service string) ([]discovery.Endpoint, error) {
	svc, err := triton.ParseService(service)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	urls, err := d.client.DiscoverEndpoints(ctx, svc)
	if err != nil {
		return nil, err
	}

	eps, err := discovery.ParseEndpoints(service, urls)
	if err != nil {
		return nil, errors.DiscoveryUnavailable(service, err)
	}

	d.log.Debug("discovered endpoints", logger.Fields(
		logger.FieldService, service,
		"count", len(eps),
	))
	return eps, nil
}
