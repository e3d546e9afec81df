package discovery

import (
	"sync"
	"time"

	"github.com/nwilkens/triton-go/errors"
)

// Registry holds the current endpoint set per logical service name and
// the advisory availability state of each member. Sets are replaced
// wholesale on refresh; readers always observe a complete snapshot.
type Registry struct {
	mu        sync.RWMutex
	services  map[string][]*endpointState
	threshold int
}

type endpointState struct {
	endpoint    Endpoint
	unavailable bool
	failures    int
	lastHealthy time.Time
}

// NewRegistry creates a Registry. threshold is the number of consecutive
// failures after which an endpoint is flagged unavailable; values below 1
// are treated as 1 (immediate marking).
func NewRegistry(threshold int) *Registry {
	if threshold < 1 {
		threshold = 1
	}
	return &Registry{
		services:  make(map[string][]*endpointState),
		threshold: threshold,
	}
}

// EndpointsFor returns a snapshot of the known endpoints for a service,
// in preference order. Unknown services yield an empty slice, never an
// error.
func (r *Registry) EndpointsFor(service string) []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := r.services[service]
	out := make([]Endpoint, len(states))
	for i, st := range states {
		out[i] = st.snapshot()
	}
	return out
}

// Replace atomically swaps the endpoint set for a service. Health state
// of the previous set is discarded; the new set starts fully available.
func (r *Registry) Replace(service string, endpoints []Endpoint) {
	states := make([]*endpointState, len(endpoints))
	for i, ep := range endpoints {
		ep.Service = service
		ep.Available = true
		states[i] = &endpointState{endpoint: ep, lastHealthy: ep.LastHealthy}
	}

	r.mu.Lock()
	r.services[service] = states
	r.mu.Unlock()
}

// ReplaceIfAbsent installs an endpoint set only when the service has no
// registered set, and reports whether it did. An existing set is kept
// together with its health state, so callers re-installing the same
// static set across repeated refresh failures do not clear the
// unavailable flags accumulated on it.
func (r *Registry) ReplaceIfAbsent(service string, endpoints []Endpoint) bool {
	states := make([]*endpointState, len(endpoints))
	for i, ep := range endpoints {
		ep.Service = service
		ep.Available = true
		states[i] = &endpointState{endpoint: ep, lastHealthy: ep.LastHealthy}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.services[service]) > 0 {
		return false
	}
	r.services[service] = states
	return true
}

// Select returns the endpoint to use for the next request: the first
// available endpoint in insertion order, or the first endpoint outright
// when every member is flagged unavailable. Flags are advisory; an empty
// set is the only failure.
func (r *Registry) Select(service string) (Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := r.services[service]
	if len(states) == 0 {
		return Endpoint{}, errors.NoHealthyEndpoint(service)
	}
	for _, st := range states {
		if !st.unavailable {
			return st.snapshot(), nil
		}
	}
	return states[0].snapshot(), nil
}

// RecordSuccess clears the unavailable flag of an endpoint and updates
// its last-healthy timestamp. Idempotent.
func (r *Registry) RecordSuccess(service string, ep Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st := r.find(service, ep.URL); st != nil {
		st.unavailable = false
		st.failures = 0
		st.lastHealthy = time.Now()
	}
}

// RecordFailure counts a failure against an endpoint and flags it
// unavailable once consecutive failures reach the registry threshold.
// The endpoint stays in the set; only the flag changes.
func (r *Registry) RecordFailure(service string, ep Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st := r.find(service, ep.URL); st != nil {
		st.failures++
		if st.failures >= r.threshold {
			st.unavailable = true
		}
	}
}

// ServiceNames returns every service with a registered endpoint set.
func (r *Registry) ServiceNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	return names
}

// AvailableCount returns how many endpoints of a service are not flagged
// unavailable.
func (r *Registry) AvailableCount(service string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, st := range r.services[service] {
		if !st.unavailable {
			n++
		}
	}
	return n
}

func (r *Registry) find(service, url string) *endpointState {
	for _, st := range r.services[service] {
		if st.endpoint.URL == url {
			return st
		}
	}
	return nil
}

func (st *endpointState) snapshot() Endpoint {
	ep := st.endpoint
	ep.Available = !st.unavailable
	ep.LastHealthy = st.lastHealthy
	return ep
}
