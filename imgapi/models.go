package imgapi

import "github.com/nwilkens/triton-go/triton"

// Image is an image manifest as returned by IMGAPI.
type Image struct {
	UUID         string            `json:"uuid"`
	Name         string            `json:"name,omitempty"`
	Version      string            `json:"version,omitempty"`
	OS           string            `json:"os,omitempty"`
	Type         string            `json:"type,omitempty"`
	State        string            `json:"state,omitempty"`
	Disabled     bool              `json:"disabled,omitempty"`
	Public       bool              `json:"public,omitempty"`
	OwnerUUID    string            `json:"owner,omitempty"`
	Origin       string            `json:"origin,omitempty"`
	Description  string            `json:"description,omitempty"`
	Homepage     string            `json:"homepage,omitempty"`
	PublishedAt  string            `json:"published_at,omitempty"`
	Files        []File            `json:"files,omitempty"`
	Requirements *Requirements     `json:"requirements,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
	ACL          []string          `json:"acl,omitempty"`
}

// File describes one stored image file.
type File struct {
	SHA1        string `json:"sha1,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Compression string `json:"compression,omitempty"`
}

// Requirements constrain where an image may be provisioned.
type Requirements struct {
	MinRAM      int64             `json:"min_ram,omitempty"`
	MaxRAM      int64             `json:"max_ram,omitempty"`
	MinPlatform map[string]string `json:"min_platform,omitempty"`
	Brand       string            `json:"brand,omitempty"`
	Networks    []string          `json:"networks,omitempty"`
}

// CreateRequest is the payload for creating an image manifest.
type CreateRequest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	OS          string            `json:"os"`
	Type        string            `json:"type"`
	OwnerUUID   string            `json:"owner,omitempty"`
	Public      bool              `json:"public,omitempty"`
	Description string            `json:"description,omitempty"`
	Homepage    string            `json:"homepage,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// UpdateRequest modifies mutable manifest attributes.
type UpdateRequest struct {
	Description string            `json:"description,omitempty"`
	Homepage    string            `json:"homepage,omitempty"`
	Public      *bool             `json:"public,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	ACL         []string          `json:"acl,omitempty"`
}

// ListParams filters ListImages.
type ListParams struct {
	Name      string
	Version   string
	OS        string
	Type      string
	State     string
	OwnerUUID string
	Public    *bool
	Limit     int
	Offset    int
}

func (p ListParams) query() triton.Params {
	params := triton.NewParams().
		Set("name", p.Name).
		Set("version", p.Version).
		Set("os", p.OS).
		Set("type", p.Type).
		Set("state", p.State).
		Set("owner", p.OwnerUUID).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
	if p.Public != nil {
		if *p.Public {
			params.Set("public", "true")
		} else {
			params.Set("public", "false")
		}
	}
	return params
}
