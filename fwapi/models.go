package fwapi

import "github.com/nwilkens/triton-go/triton"

// Rule is a firewall rule record.
type Rule struct {
	UUID        string `json:"uuid"`
	Rule        string `json:"rule"`
	Enabled     bool   `json:"enabled"`
	Global      bool   `json:"global,omitempty"`
	OwnerUUID   string `json:"owner_uuid,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// CreateRequest is the payload for creating a firewall rule.
type CreateRequest struct {
	Rule        string `json:"rule"`
	Enabled     bool   `json:"enabled"`
	OwnerUUID   string `json:"owner_uuid,omitempty"`
	Global      bool   `json:"global,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateRequest modifies mutable rule attributes.
type UpdateRequest struct {
	Rule        string `json:"rule,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListParams filters ListRules.
type ListParams struct {
	OwnerUUID string
	Enabled   *bool
	Global    *bool
	VMUUID    string
	Limit     int
	Offset    int
}

func (p ListParams) query() triton.Params {
	params := triton.NewParams().
		Set("owner_uuid", p.OwnerUUID).
		Set("vm_uuid", p.VMUUID).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
	if p.Enabled != nil {
		params.Set("enabled", boolString(*p.Enabled))
	}
	if p.Global != nil {
		params.Set("global", boolString(*p.Global))
	}
	return params
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
