package discovery

import "time"

// Status is a read-only snapshot of discovery state, recomputed on
// demand. It has no mutating operations and cannot fail.
type Status struct {
	// DiscoveredEndpoints is the total endpoint count across all services.
	DiscoveredEndpoints int
	// PerService maps each known service to its endpoint count.
	PerService map[string]int
	// CacheHits and CacheMisses are the monotonic cache counters.
	CacheHits   uint64
	CacheMisses uint64
	// Discoveries and DiscoveryFailures count backend lookups.
	Discoveries       uint64
	DiscoveryFailures uint64
	// LastError is the message of the most recent failed discovery
	// attempt, empty when the last attempt succeeded.
	LastError string
	// LastAttempt is when the backend was last consulted. Zero before the
	// first lookup.
	LastAttempt time.Time
	// Healthy is true when every service ever resolved has at least one
	// available endpoint and the most recent discovery attempt succeeded.
	Healthy bool
}

// HitRatio returns hits / (hits + misses), or 0 when no resolves have
// happened.
func (s Status) HitRatio() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// Status builds the current snapshot from the registry and counters.
func (c *Cache) Status() Status {
	counters := c.Counters()

	perService := make(map[string]int)
	total := 0
	healthy := true
	for _, name := range c.registry.ServiceNames() {
		n := len(c.registry.EndpointsFor(name))
		perService[name] = n
		total += n
		if c.registry.AvailableCount(name) == 0 {
			healthy = false
		}
	}

	c.statusMu.Lock()
	lastError := c.lastError
	lastAttempt := c.lastAttempt
	lastFailed := c.lastFailed
	c.statusMu.Unlock()

	if lastFailed {
		healthy = false
	}

	return Status{
		DiscoveredEndpoints: total,
		PerService:          perService,
		CacheHits:           counters.Hits,
		CacheMisses:         counters.Misses,
		Discoveries:         counters.Discoveries,
		DiscoveryFailures:   counters.DiscoveryFailures,
		LastError:           lastError,
		LastAttempt:         lastAttempt,
		Healthy:             healthy,
	}
}
