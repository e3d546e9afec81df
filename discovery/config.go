package discovery

import (
	"fmt"
	"time"
)

const (
	defaultCacheTTL         = 5 * time.Minute
	defaultDiscoveryTimeout = 5 * time.Second
	defaultFailureThreshold = 1
)

// Config holds discovery cache configuration.
type Config struct {
	// CacheTTL bounds how long a resolved endpoint set is trusted. Nil
	// means unset and defaults to five minutes; an explicit zero makes
	// every Resolve revalidate against the backend. The pointer keeps
	// "cache_ttl: 0" in a config file distinguishable from the field
	// being absent.
	CacheTTL *time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// Timeout bounds a single backend discovery call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// FailureThreshold is the number of consecutive request failures after
	// which an endpoint is flagged unavailable. Defaults to 1.
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`

	// Fallback provides static endpoints used when the backend fails and
	// no valid cache entry exists, keyed by service name.
	Fallback []StaticEndpoint `yaml:"fallback" mapstructure:"fallback"`
}

// TTL wraps a duration for use in a Config literal, TTL(0) included.
func TTL(d time.Duration) *time.Duration {
	return &d
}

// StaticEndpoint is a statically configured fallback endpoint.
type StaticEndpoint struct {
	Service string `yaml:"service" mapstructure:"service"`
	URL     string `yaml:"url" mapstructure:"url"`
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.CacheTTL == nil {
		c.CacheTTL = TTL(defaultCacheTTL)
	}
	if c.Timeout == 0 {
		c.Timeout = defaultDiscoveryTimeout
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = defaultFailureThreshold
	}
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	if c.CacheTTL != nil && *c.CacheTTL < 0 {
		return fmt.Errorf("discovery: cache_ttl must be >= 0")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("discovery: timeout must be >= 0")
	}
	if c.FailureThreshold < 0 {
		return fmt.Errorf("discovery: failure_threshold must be >= 0")
	}
	for _, fb := range c.Fallback {
		if fb.Service == "" || fb.URL == "" {
			return fmt.Errorf("discovery: fallback entries require both service and url")
		}
	}
	return nil
}

// fallbackTable converts configured fallback entries into parsed
// endpoints keyed by service.
func (c *Config) fallbackTable() (map[string][]Endpoint, error) {
	if len(c.Fallback) == 0 {
		return nil, nil
	}
	table := make(map[string][]Endpoint)
	for _, fb := range c.Fallback {
		ep, err := ParseEndpoint(fb.Service, fb.URL)
		if err != nil {
			return nil, err
		}
		table[fb.Service] = append(table[fb.Service], ep)
	}
	return table, nil
}
