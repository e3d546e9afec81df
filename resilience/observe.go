package resilience

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/nwilkens/triton-go/resilience"

// executorMetrics holds the otel instruments for the retry loop. A nil
// receiver records nothing.
type executorMetrics struct {
	attempts metric.Int64Counter
	retries  metric.Int64Counter
}

func newExecutorMetrics(mp metric.MeterProvider) *executorMetrics {
	meter := mp.Meter(meterName)
	m := &executorMetrics{}
	var err error

	if m.attempts, err = meter.Int64Counter("resilience.attempts",
		metric.WithDescription("Operation attempts, including the first")); err != nil {
		return nil
	}
	if m.retries, err = meter.Int64Counter("resilience.retries",
		metric.WithDescription("Backoff waits scheduled after retryable failures")); err != nil {
		return nil
	}
	return m
}

func (m *executorMetrics) recordAttempt(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

func (m *executorMetrics) recordRetry(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.retries.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}
