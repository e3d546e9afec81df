package ufds

import (
	"net/url"
	"strings"
	"time"

	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/httpclient"
)

const (
	// DefaultBaseDN is the root of the SmartDataCenter directory tree.
	DefaultBaseDN = "o=smartdc"

	// DefaultUserFilter locates a user entry by login. The {login}
	// placeholder is replaced with the escaped login value.
	DefaultUserFilter = "(&(objectClass=person)(|(uid={login})(login={login})))"

	// DefaultGroupFilter matches group entries under the group base DN.
	DefaultGroupFilter = "(|(objectClass=groupOfNames)(objectClass=groupOfUniqueNames))"

	// DefaultConnectTimeout bounds the initial LDAP connection.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultOperationTimeout bounds individual directory operations.
	DefaultOperationTimeout = 10 * time.Second
)

// Config holds UFDS connection settings.
type Config struct {
	// URL is the directory endpoint, usually ldaps://.
	URL string `yaml:"url" mapstructure:"url"`

	// BindDN and BindPassword are the admin credentials used for
	// lookups and group modifications.
	BindDN       string `yaml:"bind_dn" mapstructure:"bind_dn"`
	BindPassword string `yaml:"bind_password" mapstructure:"bind_password"`

	// BaseDN roots the directory tree. UserBaseDN and GroupBaseDN
	// default to ou=users / ou=groups under it.
	BaseDN      string `yaml:"base_dn" mapstructure:"base_dn"`
	UserBaseDN  string `yaml:"user_base_dn" mapstructure:"user_base_dn"`
	GroupBaseDN string `yaml:"group_base_dn" mapstructure:"group_base_dn"`

	// UserFilter overrides the user lookup filter template.
	UserFilter string `yaml:"user_filter" mapstructure:"user_filter"`

	ConnectTimeout   time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	OperationTimeout time.Duration `yaml:"operation_timeout" mapstructure:"operation_timeout"`

	// TLS configures certificate verification for ldaps connections.
	TLS *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BaseDN == "" {
		c.BaseDN = DefaultBaseDN
	}
	if c.UserBaseDN == "" {
		c.UserBaseDN = "ou=users, " + c.BaseDN
	}
	if c.GroupBaseDN == "" {
		c.GroupBaseDN = "ou=groups, " + c.BaseDN
	}
	if c.UserFilter == "" {
		c.UserFilter = DefaultUserFilter
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = DefaultOperationTimeout
	}
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.Config("ufds URL is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.Config("invalid ufds URL: " + err.Error())
	}
	if u.Scheme != "ldap" && u.Scheme != "ldaps" {
		return errors.Config("ufds URL scheme must be ldap or ldaps")
	}
	if c.BindDN == "" {
		return errors.Config("ufds bind DN is required")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
