package httpclient

import (
	"fmt"
	"time"

	"github.com/nwilkens/triton-go/version"
)

const defaultTimeout = 20 * time.Second

// Config configures the HTTP transport.
type Config struct {
	// Timeout is the per-request timeout. Defaults to 20s; service
	// clients usually override it with their service's timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent as the User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Auth is the default authentication applied to every request.
	// Individual requests can override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures the transport for https endpoints.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
