package client

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/discovery/sapi"
	"github.com/nwilkens/triton-go/discovery/static"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/httpclient"
	"github.com/nwilkens/triton-go/logger"
	"github.com/nwilkens/triton-go/resilience"
	"github.com/nwilkens/triton-go/triton"
)

// Operation is the unit of work Execute runs against a resolved
// endpoint.
type Operation = resilience.Operation

// Client talks to datacenter services with discovery-backed endpoint
// resolution and retry.
type Client struct {
	cfg   Config
	log   *logger.Logger
	http  *httpclient.Client
	cache *discovery.Cache
	exec  *resilience.Executor
}

type options struct {
	log        *logger.Logger
	meter      metric.MeterProvider
	discoverer discovery.Discoverer
}

// Option customizes a Client.
type Option func(*options)

// WithLogger sets the logger. Default is no logging.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMeterProvider enables OpenTelemetry metrics for the discovery
// cache and the retry loop.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meter = mp }
}

// WithDiscoverer replaces the SAPI-backed discoverer, mainly for tests
// and non-SAPI deployments.
func WithDiscoverer(d discovery.Discoverer) Option {
	return func(o *options) { o.discoverer = d }
}

// New builds a Client. The configuration is validated here, once.
func New(cfg Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := o.log
	if log == nil {
		log = logger.Nop()
	}

	backend, err := buildBackend(cfg, o, log)
	if err != nil {
		return nil, err
	}

	var cacheOpts []discovery.Option
	if o.meter != nil {
		cacheOpts = append(cacheOpts, discovery.WithMeterProvider(o.meter))
	}
	cache, err := discovery.NewCache(backend, cfg.Discovery, log, cacheOpts...)
	if err != nil {
		return nil, err
	}

	var execOpts []resilience.Option
	if o.meter != nil {
		execOpts = append(execOpts, resilience.WithMeterProvider(o.meter))
	}
	exec, err := resilience.NewExecutor(cache, cfg.Retry, log, execOpts...)
	if err != nil {
		return nil, err
	}

	httpCfg := cfg.HTTP
	if httpCfg.Auth == nil && cfg.AuthToken != "" {
		httpCfg.Auth = httpclient.TokenAuth(cfg.AuthToken)
	}
	hc, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:   cfg,
		log:   log.WithComponent("client"),
		http:  hc,
		cache: cache,
		exec:  exec,
	}, nil
}

// buildBackend picks the discovery backend: an explicit override, the
// static fallback table when discovery is disabled, or SAPI.
func buildBackend(cfg Config, o options, log *logger.Logger) (discovery.Discoverer, error) {
	if o.discoverer != nil {
		return o.discoverer, nil
	}

	if cfg.DisableDiscovery {
		table := make(map[string][]string)
		for _, fb := range cfg.Discovery.Fallback {
			table[fb.Service] = append(table[fb.Service], fb.URL)
		}
		p, err := static.NewProvider(table)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	sc, err := sapi.NewClient(cfg.SAPI)
	if err != nil {
		return nil, err
	}
	return sapi.NewDiscoverer(sc, log), nil
}

// Execute resolves an endpoint for service and runs op with retry.
// The per-service request budget is applied as a context deadline
// unless the caller already set a tighter one.
func (c *Client) Execute(ctx context.Context, service triton.Service, op Operation) error {
	ctx, cancel := c.requestContext(ctx, service)
	defer cancel()
	return c.exec.Execute(ctx, string(service), op)
}

// Do sends one HTTP request to service through discovery and retry and
// returns the decoded response.
func (c *Client) Do(ctx context.Context, service triton.Service, req httpclient.Request) (*httpclient.Response, error) {
	ctx, cancel := c.requestContext(ctx, service)
	defer cancel()
	return resilience.Do(ctx, c.exec, string(service), func(ctx context.Context, ep discovery.Endpoint) (*httpclient.Response, error) {
		if ep.Transport != discovery.TransportHTTP && ep.Transport != discovery.TransportHTTPS {
			return nil, errors.InvalidInput(fmt.Sprintf("%s endpoint %s is not an HTTP endpoint", service, ep.URL))
		}
		return c.http.Do(ctx, ep, req)
	})
}

// Resolve returns the endpoint the client would use for service right
// now, without issuing a request.
func (c *Client) Resolve(ctx context.Context, service triton.Service) (discovery.Endpoint, error) {
	return c.cache.Resolve(ctx, string(service))
}

// Invalidate drops the cached endpoint set for service.
func (c *Client) Invalidate(service triton.Service) {
	c.cache.Invalidate(string(service))
}

// Status reports discovery cache health and counters.
func (c *Client) Status() discovery.Status {
	return c.cache.Status()
}

// Policy returns the retry policy in effect.
func (c *Client) Policy() resilience.BackoffPolicy {
	return c.exec.Policy()
}

// requestContext applies the per-service request budget unless the
// caller's deadline is already tighter.
func (c *Client) requestContext(ctx context.Context, service triton.Service) (context.Context, context.CancelFunc) {
	budget := c.cfg.RequestTimeout
	if budget <= 0 {
		budget = service.DefaultTimeout()
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= budget {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, budget)
}
