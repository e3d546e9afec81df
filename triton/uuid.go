package triton

import (
	"fmt"

	"github.com/google/uuid"
)

// AppID identifies a SAPI application.
type AppID struct{ uuid.UUID }

// ServiceID identifies a SAPI service record.
type ServiceID struct{ uuid.UUID }

// InstanceID identifies a service instance or virtual machine.
type InstanceID struct{ uuid.UUID }

// NewAppID returns a random AppID.
func NewAppID() AppID { return AppID{uuid.New()} }

// NewServiceID returns a random ServiceID.
func NewServiceID() ServiceID { return ServiceID{uuid.New()} }

// NewInstanceID returns a random InstanceID.
func NewInstanceID() InstanceID { return InstanceID{uuid.New()} }

// ParseAppID parses a canonical UUID string into an AppID.
func ParseAppID(s string) (AppID, error) {
	u, err := parse(s)
	return AppID{u}, err
}

// ParseServiceID parses a canonical UUID string into a ServiceID.
func ParseServiceID(s string) (ServiceID, error) {
	u, err := parse(s)
	return ServiceID{u}, err
}

// ParseInstanceID parses a canonical UUID string into an InstanceID.
func ParseInstanceID(s string) (InstanceID, error) {
	u, err := parse(s)
	return InstanceID{u}, err
}

func parse(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return u, nil
}
