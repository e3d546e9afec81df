package papi

import (
	"context"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues PAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates a PAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListPackages lists packages matching the filter.
func (p *Client) ListPackages(ctx context.Context, params ListParams) ([]Package, error) {
	return client.Get[[]Package](ctx, p.c, triton.ServicePAPI, "/packages",
		client.WithQueryParams(params.query()))
}

// GetPackage fetches one package by UUID.
func (p *Client) GetPackage(ctx context.Context, uuid string) (*Package, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	pkg, err := client.Get[Package](ctx, p.c, triton.ServicePAPI, "/packages/"+uuid)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// CreatePackage defines a new provisioning package.
func (p *Client) CreatePackage(ctx context.Context, req CreateRequest) (*Package, error) {
	v := validation.New().
		Required("name", req.Name).
		Required("version", req.Version).
		Positive("max_physical_memory", int(req.Max)).
		Positive("quota", int(req.Quota)).
		Positive("cpu_cap", int(req.CPUCap))
	if err := v.Validate(); err != nil {
		return nil, err
	}
	pkg, err := client.Post[Package](ctx, p.c, triton.ServicePAPI, "/packages", req)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// UpdatePackage modifies mutable package attributes.
func (p *Client) UpdatePackage(ctx context.Context, uuid string, req UpdateRequest) (*Package, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	pkg, err := client.Put[Package](ctx, p.c, triton.ServicePAPI, "/packages/"+uuid, req)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// DeletePackage removes a package. PAPI refuses to delete packages
// that are still referenced by active VMs.
func (p *Client) DeletePackage(ctx context.Context, uuid string) error {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return err
	}
	return client.Delete(ctx, p.c, triton.ServicePAPI, "/packages/"+uuid)
}
