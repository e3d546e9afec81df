package cnapi

import (
	"context"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues CNAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates a CNAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListServers lists compute nodes matching the filter.
func (s *Client) ListServers(ctx context.Context, params ListParams) ([]Server, error) {
	return client.Get[[]Server](ctx, s.c, triton.ServiceCNAPI, "/servers",
		client.WithQueryParams(params.query()))
}

// GetServer fetches one compute node by UUID.
func (s *Client) GetServer(ctx context.Context, uuid string) (*Server, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	srv, err := client.Get[Server](ctx, s.c, triton.ServiceCNAPI, "/servers/"+uuid)
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

// UpdateServer modifies mutable server attributes.
func (s *Client) UpdateServer(ctx context.Context, uuid string, req UpdateRequest) (*Server, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	srv, err := client.Post[Server](ctx, s.c, triton.ServiceCNAPI, "/servers/"+uuid, req)
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

// RebootServer reboots a compute node and returns the task handle.
func (s *Client) RebootServer(ctx context.Context, uuid string) (*Task, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	task, err := client.Post[Task](ctx, s.c, triton.ServiceCNAPI, "/servers/"+uuid+"/reboot", nil)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
