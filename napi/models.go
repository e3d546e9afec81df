package napi

import "github.com/nwilkens/triton-go/triton"

// Network is a logical network managed by NAPI.
type Network struct {
	UUID             string            `json:"uuid"`
	Name             string            `json:"name,omitempty"`
	Subnet           string            `json:"subnet,omitempty"`
	Gateway          string            `json:"gateway,omitempty"`
	ProvisionStartIP string            `json:"provision_start_ip,omitempty"`
	ProvisionEndIP   string            `json:"provision_end_ip,omitempty"`
	VLANID           int               `json:"vlan_id"`
	NicTag           string            `json:"nic_tag,omitempty"`
	Resolvers        []string          `json:"resolvers,omitempty"`
	OwnerUUIDs       []string          `json:"owner_uuids,omitempty"`
	Fabric           bool              `json:"fabric,omitempty"`
	InternetNAT      bool              `json:"internet_nat,omitempty"`
	MTU              int               `json:"mtu,omitempty"`
	Description      string            `json:"description,omitempty"`
	Routes           map[string]string `json:"routes,omitempty"`
}

// CreateNetworkRequest is the payload for creating a network.
type CreateNetworkRequest struct {
	Name             string   `json:"name"`
	Subnet           string   `json:"subnet"`
	ProvisionStartIP string   `json:"provision_start_ip"`
	ProvisionEndIP   string   `json:"provision_end_ip"`
	NicTag           string   `json:"nic_tag"`
	VLANID           int      `json:"vlan_id"`
	Gateway          string   `json:"gateway,omitempty"`
	Resolvers        []string `json:"resolvers,omitempty"`
	OwnerUUIDs       []string `json:"owner_uuids,omitempty"`
	MTU              int      `json:"mtu,omitempty"`
	Description      string   `json:"description,omitempty"`
}

// UpdateNetworkRequest modifies mutable network attributes.
type UpdateNetworkRequest struct {
	Name        string   `json:"name,omitempty"`
	Gateway     string   `json:"gateway,omitempty"`
	Resolvers   []string `json:"resolvers,omitempty"`
	Description string   `json:"description,omitempty"`
	MTU         int      `json:"mtu,omitempty"`
}

// NetworkPool groups networks for provisioning.
type NetworkPool struct {
	UUID     string   `json:"uuid"`
	Name     string   `json:"name,omitempty"`
	Networks []string `json:"networks,omitempty"`
	NicTag   string   `json:"nic_tag,omitempty"`
}

// NIC is a network interface record.
type NIC struct {
	MAC           string `json:"mac"`
	IP            string `json:"ip,omitempty"`
	Netmask       string `json:"netmask,omitempty"`
	Gateway       string `json:"gateway,omitempty"`
	NetworkUUID   string `json:"network_uuid,omitempty"`
	NicTag        string `json:"nic_tag,omitempty"`
	State         string `json:"state,omitempty"`
	Primary       bool   `json:"primary,omitempty"`
	BelongsToUUID string `json:"belongs_to_uuid,omitempty"`
	BelongsToType string `json:"belongs_to_type,omitempty"`
	OwnerUUID     string `json:"owner_uuid,omitempty"`
	CNUUID        string `json:"cn_uuid,omitempty"`
}

// CreateNICRequest is the payload for registering a NIC.
type CreateNICRequest struct {
	MAC           string `json:"mac"`
	OwnerUUID     string `json:"owner_uuid"`
	BelongsToUUID string `json:"belongs_to_uuid"`
	BelongsToType string `json:"belongs_to_type"`
	IP            string `json:"ip,omitempty"`
	NetworkUUID   string `json:"network_uuid,omitempty"`
	NicTag        string `json:"nic_tag,omitempty"`
	Primary       bool   `json:"primary,omitempty"`
}

// UpdateNICRequest modifies mutable NIC attributes.
type UpdateNICRequest struct {
	BelongsToUUID string `json:"belongs_to_uuid,omitempty"`
	BelongsToType string `json:"belongs_to_type,omitempty"`
	OwnerUUID     string `json:"owner_uuid,omitempty"`
	Primary       *bool  `json:"primary,omitempty"`
	State         string `json:"state,omitempty"`
}

// NetworkListParams filters ListNetworks.
type NetworkListParams struct {
	Name      string
	NicTag    string
	OwnerUUID string
	Fabric    *bool
	Limit     int
	Offset    int
}

func (p NetworkListParams) query() triton.Params {
	params := triton.NewParams().
		Set("name", p.Name).
		Set("nic_tag", p.NicTag).
		Set("owner_uuid", p.OwnerUUID).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
	if p.Fabric != nil && *p.Fabric {
		params.SetBool("fabric", true)
	}
	return params
}

// NICListParams filters ListNICs.
type NICListParams struct {
	BelongsToUUID string
	BelongsToType string
	OwnerUUID     string
	NetworkUUID   string
	NicTag        string
	Limit         int
	Offset        int
}

func (p NICListParams) query() triton.Params {
	return triton.NewParams().
		Set("belongs_to_uuid", p.BelongsToUUID).
		Set("belongs_to_type", p.BelongsToType).
		Set("owner_uuid", p.OwnerUUID).
		Set("network_uuid", p.NetworkUUID).
		Set("nic_tag", p.NicTag).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
}
