package discovery

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/nwilkens/triton-go/discovery"

// cacheMetrics holds the otel instruments backing the cache counters.
// A nil receiver is valid and records nothing, so callers that skip
// WithMeterProvider pay only a nil check.
type cacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	successes metric.Int64Counter
	failures  metric.Int64Counter
}

// WithMeterProvider exports the cache counters as otel instruments.
// The instruments mirror the local counters; they never replace them.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Cache) {
		meter := mp.Meter(meterName)
		m := &cacheMetrics{}
		var err error

		if m.hits, err = meter.Int64Counter("discovery.cache.hits",
			metric.WithDescription("Endpoint resolutions served from cache")); err != nil {
			return
		}
		if m.misses, err = meter.Int64Counter("discovery.cache.misses",
			metric.WithDescription("Endpoint resolutions requiring a backend lookup")); err != nil {
			return
		}
		if m.successes, err = meter.Int64Counter("discovery.lookups.succeeded",
			metric.WithDescription("Successful backend discovery lookups")); err != nil {
			return
		}
		if m.failures, err = meter.Int64Counter("discovery.lookups.failed",
			metric.WithDescription("Failed backend discovery lookups")); err != nil {
			return
		}
		c.metrics = m
	}
}

func (m *cacheMetrics) recordHit(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

func (m *cacheMetrics) recordMiss(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

func (m *cacheMetrics) recordSuccess(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.successes.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

func (m *cacheMetrics) recordFailure(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}
