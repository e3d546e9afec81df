package napi

import (
	"context"
	"strings"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues NAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates a NAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListNetworks lists networks matching the filter.
func (n *Client) ListNetworks(ctx context.Context, params NetworkListParams) ([]Network, error) {
	return client.Get[[]Network](ctx, n.c, triton.ServiceNAPI, "/networks",
		client.WithQueryParams(params.query()))
}

// GetNetwork fetches one network by UUID.
func (n *Client) GetNetwork(ctx context.Context, uuid string) (*Network, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	net, err := client.Get[Network](ctx, n.c, triton.ServiceNAPI, "/networks/"+uuid)
	if err != nil {
		return nil, err
	}
	return &net, nil
}

// CreateNetwork provisions a new logical network.
func (n *Client) CreateNetwork(ctx context.Context, req CreateNetworkRequest) (*Network, error) {
	v := validation.New().
		Required("name", req.Name).
		Required("subnet", req.Subnet).
		Required("nic_tag", req.NicTag).
		Required("provision_start_ip", req.ProvisionStartIP).
		Required("provision_end_ip", req.ProvisionEndIP)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	net, err := client.Post[Network](ctx, n.c, triton.ServiceNAPI, "/networks", req)
	if err != nil {
		return nil, err
	}
	return &net, nil
}

// UpdateNetwork modifies mutable network attributes.
func (n *Client) UpdateNetwork(ctx context.Context, uuid string, req UpdateNetworkRequest) (*Network, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	net, err := client.Put[Network](ctx, n.c, triton.ServiceNAPI, "/networks/"+uuid, req)
	if err != nil {
		return nil, err
	}
	return &net, nil
}

// DeleteNetwork removes a network.
func (n *Client) DeleteNetwork(ctx context.Context, uuid string) error {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return err
	}
	return client.Delete(ctx, n.c, triton.ServiceNAPI, "/networks/"+uuid)
}

// ListNetworkPools lists network pools.
func (n *Client) ListNetworkPools(ctx context.Context) ([]NetworkPool, error) {
	return client.Get[[]NetworkPool](ctx, n.c, triton.ServiceNAPI, "/network_pools")
}

// GetNetworkPool fetches one network pool by UUID.
func (n *Client) GetNetworkPool(ctx context.Context, uuid string) (*NetworkPool, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	pool, err := client.Get[NetworkPool](ctx, n.c, triton.ServiceNAPI, "/network_pools/"+uuid)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// ListNICs lists NIC records matching the filter.
func (n *Client) ListNICs(ctx context.Context, params NICListParams) ([]NIC, error) {
	return client.Get[[]NIC](ctx, n.c, triton.ServiceNAPI, "/nics",
		client.WithQueryParams(params.query()))
}

// GetNIC fetches one NIC by MAC address.
func (n *Client) GetNIC(ctx context.Context, mac string) (*NIC, error) {
	key, err := nicPathKey(mac)
	if err != nil {
		return nil, err
	}
	nic, err := client.Get[NIC](ctx, n.c, triton.ServiceNAPI, "/nics/"+key)
	if err != nil {
		return nil, err
	}
	return &nic, nil
}

// CreateNIC registers a NIC record.
func (n *Client) CreateNIC(ctx context.Context, req CreateNICRequest) (*NIC, error) {
	v := validation.New().
		Required("mac", req.MAC).
		RequiredUUID("owner_uuid", req.OwnerUUID).
		RequiredUUID("belongs_to_uuid", req.BelongsToUUID).
		Required("belongs_to_type", req.BelongsToType)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	nic, err := client.Post[NIC](ctx, n.c, triton.ServiceNAPI, "/nics", req)
	if err != nil {
		return nil, err
	}
	return &nic, nil
}

// UpdateNIC modifies a NIC record by MAC address.
func (n *Client) UpdateNIC(ctx context.Context, mac string, req UpdateNICRequest) (*NIC, error) {
	key, err := nicPathKey(mac)
	if err != nil {
		return nil, err
	}
	nic, err := client.Put[NIC](ctx, n.c, triton.ServiceNAPI, "/nics/"+key, req)
	if err != nil {
		return nil, err
	}
	return &nic, nil
}

// DeleteNIC removes a NIC record by MAC address.
func (n *Client) DeleteNIC(ctx context.Context, mac string) error {
	key, err := nicPathKey(mac)
	if err != nil {
		return err
	}
	return client.Delete(ctx, n.c, triton.ServiceNAPI, "/nics/"+key)
}

// nicPathKey normalizes a MAC for NIC resource paths. NAPI addresses
// NICs by MAC with the colons stripped.
func nicPathKey(mac string) (string, error) {
	if strings.TrimSpace(mac) == "" {
		return "", errors.InvalidInput("mac is required")
	}
	return strings.ToLower(strings.ReplaceAll(mac, ":", "")), nil
}
