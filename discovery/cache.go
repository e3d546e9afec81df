package discovery

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/logger"
)

// Counters is a snapshot of the cache's monotonic counters.
type Counters struct {
	Hits              uint64
	Misses            uint64
	Discoveries       uint64
	DiscoveryFailures uint64
}

// Cache is the TTL-bounded memoization layer over a Discoverer backend.
// It owns the endpoint Registry and the discovery counters.
type Cache struct {
	backend  Discoverer
	registry *Registry
	cfg      Config
	fallback map[string][]Endpoint
	log      *logger.Logger
	metrics  *cacheMetrics

	mu      sync.RWMutex
	entries map[string]cacheEntry

	hits     atomic.Uint64
	misses   atomic.Uint64
	succeeds atomic.Uint64
	fails    atomic.Uint64

	statusMu    sync.Mutex
	lastError   string
	lastAttempt time.Time
	lastFailed  bool
}

type cacheEntry struct {
	createdAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// NewCache creates a Cache over the given backend. The configured
// fallback table must parse; invalid entries fail construction rather
// than a later Resolve.
func NewCache(backend Discoverer, cfg Config, log *logger.Logger, opts ...Option) (*Cache, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Config(err.Error())
	}
	fallback, err := cfg.fallbackTable()
	if err != nil {
		return nil, errors.Config(err.Error())
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &Cache{
		backend:  backend,
		registry: NewRegistry(cfg.FailureThreshold),
		cfg:      cfg,
		fallback: fallback,
		log:      log.WithComponent("discovery"),
		entries:  make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Registry returns the endpoint registry owned by this cache.
func (c *Cache) Registry() *Registry {
	return c.registry
}

// Resolve returns an endpoint for the named service. A valid cache entry
// counts a hit and delegates selection to the registry; otherwise the
// backend is consulted, the registry refreshed, and an endpoint selected
// from the new set. On backend failure the static fallback table is used
// when configured; fallback endpoints are installed only when the
// registry has no set for the service, so health recorded against them
// steers selection across repeated failures, and they are never cached,
// so the next Resolve retries the backend.
func (c *Cache) Resolve(ctx context.Context, service string) (Endpoint, error) {
	if c.entryValid(service) {
		c.hits.Add(1)
		c.metrics.recordHit(ctx, service)
		return c.registry.Select(service)
	}

	c.misses.Add(1)
	c.metrics.recordMiss(ctx, service)

	dctx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	endpoints, err := c.backend.Discover(dctx, service)
	if err != nil {
		c.fails.Add(1)
		c.metrics.recordFailure(ctx, service)
		c.noteAttempt(err)
		c.log.Warn("discovery failed", logger.Fields(
			logger.FieldService, service, logger.FieldError, err.Error()))

		if fb, ok := c.fallback[service]; ok {
			if c.registry.ReplaceIfAbsent(service, fb) {
				c.log.Info("using static fallback endpoints", logger.Fields(
					logger.FieldService, service, "endpoints", len(fb)))
			}
			return c.registry.Select(service)
		}
		if dctx.Err() != nil && ctx.Err() == nil {
			err = errors.Timeout("discovery lookup for "+service, err)
		}
		return Endpoint{}, errors.DiscoveryUnavailable(service, err)
	}

	c.succeeds.Add(1)
	c.metrics.recordSuccess(ctx, service)
	c.noteAttempt(nil)

	c.registry.Replace(service, endpoints)
	c.mu.Lock()
	c.entries[service] = cacheEntry{createdAt: time.Now()}
	c.mu.Unlock()

	c.log.Debug("discovery refreshed", logger.Fields(
		logger.FieldService, service, "endpoints", len(endpoints)))
	return c.registry.Select(service)
}

// Invalidate drops the cache entry for a service, forcing the next
// Resolve to revalidate. Registry contents are untouched.
func (c *Cache) Invalidate(service string) {
	c.mu.Lock()
	delete(c.entries, service)
	c.mu.Unlock()
}

// RecordSuccess forwards a request outcome to the registry.
func (c *Cache) RecordSuccess(service string, ep Endpoint) {
	c.registry.RecordSuccess(service, ep)
}

// RecordFailure forwards a request outcome to the registry.
func (c *Cache) RecordFailure(service string, ep Endpoint) {
	c.registry.RecordFailure(service, ep)
}

// Counters returns a snapshot of the cache counters.
func (c *Cache) Counters() Counters {
	return Counters{
		Hits:              c.hits.Load(),
		Misses:            c.misses.Load(),
		Discoveries:       c.succeeds.Load(),
		DiscoveryFailures: c.fails.Load(),
	}
}

// An entry is valid iff now - created_at < ttl. A zero TTL therefore
// never validates: every Resolve goes to the backend.
func (c *Cache) entryValid(service string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[service]
	if !ok {
		return false
	}
	return time.Since(entry.createdAt) < *c.cfg.CacheTTL
}

func (c *Cache) noteAttempt(err error) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()

	c.lastAttempt = time.Now()
	c.lastFailed = err != nil
	if err != nil {
		c.lastError = err.Error()
	} else {
		c.lastError = ""
	}
}
