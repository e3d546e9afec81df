package client

import (
	"time"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/discovery/sapi"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/httpclient"
	"github.com/nwilkens/triton-go/resilience"
	"github.com/nwilkens/triton-go/validation"
)

// maxServiceTimeout is the longest per-service request budget; the
// shared transport timeout must not undercut it.
const maxServiceTimeout = 60 * time.Second

// Config configures a datacenter client.
type Config struct {
	// SAPI configures the discovery backend. Required unless
	// DisableDiscovery is set.
	SAPI sapi.Config `yaml:"sapi" mapstructure:"sapi"`

	// AuthToken is sent as X-Auth-Token on every service request when
	// no other auth is configured.
	AuthToken string `yaml:"auth_token" mapstructure:"auth_token"`

	// DisableDiscovery turns off SAPI lookups; only the fallback
	// endpoints in Discovery.Fallback serve.
	DisableDiscovery bool `yaml:"disable_discovery" mapstructure:"disable_discovery"`

	// Discovery configures the endpoint cache.
	Discovery discovery.Config `yaml:"discovery" mapstructure:"discovery"`

	// Retry configures the backoff policy for retryable failures.
	Retry resilience.BackoffPolicy `yaml:"retry" mapstructure:"retry"`

	// HTTP configures the shared transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`

	// RequestTimeout overrides the per-service request budget for all
	// services. Zero keeps the per-service defaults.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout" validate:"min=0"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.SAPI.ApplyDefaults()
	c.Discovery.ApplyDefaults()

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = resilience.DefaultMaxAttempts
	}
	if c.Retry.InitialDelay == 0 {
		c.Retry.InitialDelay = resilience.DefaultInitialDelay
	}
	if c.Retry.MaxDelay == 0 {
		c.Retry.MaxDelay = resilience.DefaultMaxDelay
	}
	if c.Retry.Multiplier == 0 {
		c.Retry.Multiplier = resilience.DefaultMultiplier
	}

	if c.HTTP.Timeout <= 0 {
		// Cap requests at the transport level only as a backstop; the
		// effective budget comes from per-service context deadlines.
		c.HTTP.Timeout = maxServiceTimeout
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks the configuration. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.DisableDiscovery {
		if len(c.Discovery.Fallback) == 0 {
			return errors.Config("discovery disabled but no fallback endpoints configured")
		}
	} else if err := c.SAPI.Validate(); err != nil {
		return err
	}
	if err := c.Discovery.Validate(); err != nil {
		return err
	}
	if err := c.Retry.Validate(); err != nil {
		return err
	}
	return c.HTTP.Validate()
}
