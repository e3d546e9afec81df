package cnapi

import "github.com/nwilkens/triton-go/triton"

// Server is a compute node as returned by CNAPI.
type Server struct {
	UUID            string            `json:"uuid"`
	Hostname        string            `json:"hostname,omitempty"`
	Status          string            `json:"status,omitempty"`
	Setup           bool              `json:"setup,omitempty"`
	Headnode        bool              `json:"headnode,omitempty"`
	Reserved        bool              `json:"reserved,omitempty"`
	Datacenter      string            `json:"datacenter,omitempty"`
	RAM             int64             `json:"ram,omitempty"`
	CurrentPlatform string            `json:"current_platform,omitempty"`
	BootPlatform    string            `json:"boot_platform,omitempty"`
	Traits          map[string]any    `json:"traits,omitempty"`
	SysinfoTags     map[string]string `json:"tags,omitempty"`
	LastBoot        string            `json:"last_boot,omitempty"`
	Created         string            `json:"created,omitempty"`
}

// UpdateRequest modifies mutable server attributes.
type UpdateRequest struct {
	Reserved     *bool          `json:"reserved,omitempty"`
	BootPlatform string         `json:"boot_platform,omitempty"`
	Datacenter   string         `json:"datacenter,omitempty"`
	Traits       map[string]any `json:"traits,omitempty"`
}

// Task is an asynchronous CNAPI server task.
type Task struct {
	ID string `json:"id,omitempty"`
}

// ListParams filters ListServers.
type ListParams struct {
	Hostname  string
	Setup     *bool
	Headnode  *bool
	Reserved  *bool
	ExtraInfo string
	Limit     int
	Offset    int
}

func (p ListParams) query() triton.Params {
	params := triton.NewParams().
		Set("hostname", p.Hostname).
		Set("extras", p.ExtraInfo).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
	if p.Setup != nil {
		params.Set("setup", boolString(*p.Setup))
	}
	if p.Headnode != nil {
		params.Set("headnode", boolString(*p.Headnode))
	}
	if p.Reserved != nil {
		params.Set("reserved", boolString(*p.Reserved))
	}
	return params
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
