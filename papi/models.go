package papi

import "github.com/nwilkens/triton-go/triton"

// Package is a provisioning package (instance size) record.
type Package struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	Active      bool     `json:"active"`
	Default     bool     `json:"default,omitempty"`
	Max         int64    `json:"max_physical_memory,omitempty"`
	MaxSwap     int64    `json:"max_swap,omitempty"`
	Quota       int64    `json:"quota,omitempty"`
	CPUCap      int64    `json:"cpu_cap,omitempty"`
	VCPUs       int64    `json:"vcpus,omitempty"`
	ZFSIOPrio   int64    `json:"zfs_io_priority,omitempty"`
	OwnerUUIDs  []string `json:"owner_uuids,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Group       string   `json:"group,omitempty"`
	Description string   `json:"description,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// CreateRequest is the payload for creating a package.
type CreateRequest struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Active     bool     `json:"active"`
	Max        int64    `json:"max_physical_memory"`
	MaxSwap    int64    `json:"max_swap,omitempty"`
	Quota      int64    `json:"quota"`
	CPUCap     int64    `json:"cpu_cap"`
	VCPUs      int64    `json:"vcpus,omitempty"`
	ZFSIOPrio  int64    `json:"zfs_io_priority,omitempty"`
	OwnerUUIDs []string `json:"owner_uuids,omitempty"`
	Brand      string   `json:"brand,omitempty"`
	Group      string   `json:"group,omitempty"`
}

// UpdateRequest modifies mutable package attributes.
type UpdateRequest struct {
	Active      *bool    `json:"active,omitempty"`
	Default     *bool    `json:"default,omitempty"`
	OwnerUUIDs  []string `json:"owner_uuids,omitempty"`
	Group       string   `json:"group,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ListParams filters ListPackages.
type ListParams struct {
	Name      string
	Version   string
	Active    *bool
	OwnerUUID string
	Group     string
	Limit     int
	Offset    int
}

func (p ListParams) query() triton.Params {
	params := triton.NewParams().
		Set("name", p.Name).
		Set("version", p.Version).
		Set("owner_uuid", p.OwnerUUID).
		Set("group", p.Group).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
	if p.Active != nil {
		if *p.Active {
			params.Set("active", "true")
		} else {
			params.Set("active", "false")
		}
	}
	return params
}
