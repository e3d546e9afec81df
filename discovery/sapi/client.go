package sapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/httpclient"
	"github.com/nwilkens/triton-go/triton"
)

const (
	// DefaultAcceptVersion is the SAPI API version requested.
	DefaultAcceptVersion = "2.0.0"
	// DefaultTimeout bounds individual SAPI requests.
	DefaultTimeout = 20 * time.Second

	headerAcceptVersion = "Accept-Version"
	headerAPIKey        = "X-Api-Key"
)

// Config configures a SAPI client.
type Config struct {
	// URL is the SAPI base URL. Required; SAPI is the bootstrap
	// service, so its own address cannot be discovered.
	URL string `yaml:"url" mapstructure:"url"`

	// APIKey is sent as X-Api-Key when set.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// AcceptVersion pins the SAPI API version. Defaults to 2.0.0.
	AcceptVersion string `yaml:"accept_version" mapstructure:"accept_version"`

	// Timeout bounds each SAPI request. Defaults to 20s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures the transport for https SAPI endpoints.
	TLS *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AcceptVersion == "" {
		c.AcceptVersion = DefaultAcceptVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.Config("sapi: url is required")
	}
	return nil
}

// Client is a client for the Triton Services API.
type Client struct {
	http     *httpclient.Client
	endpoint discovery.Endpoint
	cfg      Config
}

// NewClient creates a SAPI client.
func NewClient(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ep, err := discovery.ParseEndpoint(string(triton.ServiceSAPI), cfg.URL)
	if err != nil {
		return nil, errors.Config(fmt.Sprintf("sapi: invalid url %q: %v", cfg.URL, err))
	}

	hc, err := httpclient.New(httpclient.Config{
		Timeout: cfg.Timeout,
		TLS:     cfg.TLS,
	})
	if err != nil {
		return nil, err
	}

	return &Client{http: hc, endpoint: ep, cfg: cfg}, nil
}

// ListApplications lists applications registered in SAPI.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.getJSON(ctx, "/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetApplication fetches an application by UUID.
func (c *Client) GetApplication(ctx context.Context, uuid triton.AppID) (*Application, error) {
	var out Application
	if err := c.getJSON(ctx, "/applications/"+uuid.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListServices lists services matching the query.
func (c *Client) ListServices(ctx context.Context, q ServiceQuery) ([]Service, error) {
	var out []Service
	if err := c.getJSON(ctx, "/services", q.params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetService fetches a service by UUID.
func (c *Client) GetService(ctx context.Context, uuid triton.ServiceID) (*Service, error) {
	var out Service
	if err := c.getJSON(ctx, "/services/"+uuid.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInstances lists instances matching the query.
func (c *Client) ListInstances(ctx context.Context, q InstanceQuery) ([]Instance, error) {
	var out []Instance
	if err := c.getJSON(ctx, "/instances", q.params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInstance fetches an instance by UUID.
func (c *Client) GetInstance(ctx context.Context, uuid triton.InstanceID) (*Instance, error) {
	var out Instance
	if err := c.getJSON(ctx, "/instances/"+uuid.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverEndpoints resolves endpoint URLs for a Triton service by
// listing its SAPI instances. Instance metadata wins over derived
// hostname URLs; instances with neither are skipped.
func (c *Client) DiscoverEndpoints(ctx context.Context, service triton.Service) ([]string, error) {
	services, err := c.ListServices(ctx, ServiceQuery{Name: string(service)})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		e := errors.New(errors.ErrCodeNotFound, fmt.Sprintf("SAPI service %q not found", service))
		e.Service = string(service)
		return nil, e
	}

	var urls []string
	seen := map[string]bool{}
	for _, svc := range services {
		instances, err := c.ListInstances(ctx, InstanceQuery{
			ServiceUUID:   svc.UUID.String(),
			IncludeMaster: true,
		})
		if err != nil {
			return nil, err
		}
		for _, inst := range instances {
			for _, u := range instanceURLs(service, inst) {
				if !seen[u] {
					seen[u] = true
					urls = append(urls, u)
				}
			}
		}
	}

	if len(urls) == 0 {
		return nil, errors.DiscoveryUnavailable(string(service),
			fmt.Errorf("no endpoints discovered for service %q", service))
	}
	return urls, nil
}

// instanceURLs derives endpoint URLs from one SAPI instance. Explicit
// "<service>_url", "<service>_endpoint" and "url" keys in metadata or
// params take precedence; otherwise the hostname plus the service's
// default port is used, with ldaps for UFDS.
func instanceURLs(service triton.Service, inst Instance) []string {
	keys := []string{
		string(service) + "_url",
		string(service) + "_endpoint",
		"url",
	}

	var urls []string
	seen := map[string]bool{}
	for _, key := range keys {
		for _, m := range []map[string]json.RawMessage{inst.Metadata, inst.Params} {
			if v, ok := stringField(m, key); ok && !seen[v] {
				seen[v] = true
				urls = append(urls, v)
			}
		}
	}
	if len(urls) > 0 {
		return urls
	}

	if inst.Hostname != "" {
		scheme := "http"
		if service == triton.ServiceUFDS {
			scheme = "ldaps"
		}
		return []string{fmt.Sprintf("%s://%s:%d", scheme, inst.Hostname, service.DefaultPort())}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	headers := map[string]string{headerAcceptVersion: c.cfg.AcceptVersion}
	if c.cfg.APIKey != "" {
		headers[headerAPIKey] = c.cfg.APIKey
	}

	resp, err := c.http.Do(ctx, c.endpoint, httpclient.Request{
		Method:  http.MethodGet,
		Path:    path,
		Query:   query,
		Headers: headers,
	})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}
