package fwapi

import (
	"context"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues FWAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates a FWAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListRules lists firewall rules matching the filter.
func (f *Client) ListRules(ctx context.Context, params ListParams) ([]Rule, error) {
	return client.Get[[]Rule](ctx, f.c, triton.ServiceFWAPI, "/rules",
		client.WithQueryParams(params.query()))
}

// GetRule fetches one firewall rule by UUID.
func (f *Client) GetRule(ctx context.Context, uuid string) (*Rule, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	rule, err := client.Get[Rule](ctx, f.c, triton.ServiceFWAPI, "/rules/"+uuid)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateRule adds a firewall rule.
func (f *Client) CreateRule(ctx context.Context, req CreateRequest) (*Rule, error) {
	if err := validation.New().Required("rule", req.Rule).Validate(); err != nil {
		return nil, err
	}
	rule, err := client.Post[Rule](ctx, f.c, triton.ServiceFWAPI, "/rules", req)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule modifies a firewall rule.
func (f *Client) UpdateRule(ctx context.Context, uuid string, req UpdateRequest) (*Rule, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	rule, err := client.Put[Rule](ctx, f.c, triton.ServiceFWAPI, "/rules/"+uuid, req)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteRule removes a firewall rule.
func (f *Client) DeleteRule(ctx context.Context, uuid string) error {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return err
	}
	return client.Delete(ctx, f.c, triton.ServiceFWAPI, "/rules/"+uuid)
}

// ListVMRules lists the rules that apply to a VM.
func (f *Client) ListVMRules(ctx context.Context, vmUUID string) ([]Rule, error) {
	if err := validation.New().RequiredUUID("vm_uuid", vmUUID).Validate(); err != nil {
		return nil, err
	}
	return client.Get[[]Rule](ctx, f.c, triton.ServiceFWAPI, "/firewalls/vms/"+vmUUID)
}
