package sapi

import (
	"encoding/json"

	"github.com/nwilkens/triton-go/triton"
)

// InstanceType distinguishes VM-hosted services from agents.
type InstanceType string

const (
	// InstanceTypeVM is a service running in its own zone.
	InstanceTypeVM InstanceType = "vm"
	// InstanceTypeAgent is a per-server agent instance.
	InstanceTypeAgent InstanceType = "agent"
)

// Application is a SAPI application definition.
type Application struct {
	UUID      triton.AppID               `json:"uuid"`
	Name      string                     `json:"name"`
	OwnerUUID string                     `json:"owner_uuid"`
	Params    map[string]json.RawMessage `json:"params,omitempty"`
	Metadata  map[string]json.RawMessage `json:"metadata,omitempty"`
	CreatedAt string                     `json:"created_at,omitempty"`
	UpdatedAt string                     `json:"updated_at,omitempty"`
}

// Service is a SAPI service definition owned by an application.
type Service struct {
	UUID            triton.ServiceID           `json:"uuid"`
	Name            string                     `json:"name"`
	ApplicationUUID triton.AppID               `json:"application_uuid"`
	Params          map[string]json.RawMessage `json:"params,omitempty"`
	Metadata        map[string]json.RawMessage `json:"metadata,omitempty"`
	Type            InstanceType               `json:"type,omitempty"`
	CreatedAt       string                     `json:"created_at,omitempty"`
	UpdatedAt       string                     `json:"updated_at,omitempty"`
}

// Instance is a deployed instance of a SAPI service.
type Instance struct {
	UUID        triton.InstanceID          `json:"uuid"`
	ServiceUUID triton.ServiceID           `json:"service_uuid"`
	Name        string                     `json:"name,omitempty"`
	ServiceName string                     `json:"service_name,omitempty"`
	Version     string                     `json:"version,omitempty"`
	Hostname    string                     `json:"hostname,omitempty"`
	ServerUUID  string                     `json:"server_uuid,omitempty"`
	Params      map[string]json.RawMessage `json:"params,omitempty"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
	Master      bool                       `json:"master,omitempty"`
	State       string                     `json:"state,omitempty"`
	Type        InstanceType               `json:"type,omitempty"`
	CreatedAt   string                     `json:"created_at,omitempty"`
	UpdatedAt   string                     `json:"updated_at,omitempty"`
}

// stringField returns m[key] when it holds a JSON string.
func stringField(m map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
