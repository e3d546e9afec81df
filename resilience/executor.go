package resilience

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/logger"
)

// Operation is one attempt of work against a resolved endpoint. The
// executor classifies its error to decide whether to retry.
type Operation func(ctx context.Context, ep discovery.Endpoint) error

// EndpointSource is the slice of the discovery layer the executor
// needs. *discovery.Cache satisfies it.
type EndpointSource interface {
	Resolve(ctx context.Context, service string) (discovery.Endpoint, error)
	RecordSuccess(service string, ep discovery.Endpoint)
	RecordFailure(service string, ep discovery.Endpoint)
}

var _ EndpointSource = (*discovery.Cache)(nil)

// Executor runs operations with endpoint resolution and backoff retry.
// Resolution happens before every attempt, so after a failure flags an
// endpoint the next attempt can route around it.
type Executor struct {
	source  EndpointSource
	policy  BackoffPolicy
	log     *logger.Logger
	metrics *executorMetrics
}

// Option customizes an Executor.
type Option func(*Executor)

// WithMeterProvider enables OpenTelemetry attempt and retry counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Executor) {
		e.metrics = newExecutorMetrics(mp)
	}
}

// NewExecutor builds an Executor around an endpoint source. A nil log
// disables logging.
func NewExecutor(source EndpointSource, policy BackoffPolicy, log *logger.Logger, opts ...Option) (*Executor, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	e := &Executor{
		source: source,
		policy: policy,
		log:    log.WithComponent("resilience"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the executor's backoff policy.
func (e *Executor) Policy() BackoffPolicy { return e.policy }

// Execute resolves an endpoint for service and runs op, retrying
// retryable failures with backoff up to the policy's attempt budget.
//
// Success records endpoint health and returns nil. A retryable failure
// records an endpoint failure, waits DelayForAttempt(n), re-resolves
// and tries again. A non-retryable failure returns immediately without
// touching endpoint health. When the budget is spent the caller gets
// RETRIES_EXHAUSTED wrapping the last attempt's error. Resolution
// failures (discovery down, no endpoints) are terminal: retrying the
// operation cannot fix them.
func (e *Executor) Execute(ctx context.Context, service string, op Operation) error {
	maxAttempts := e.policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		ep, err := e.source.Resolve(ctx, service)
		if err != nil {
			return err
		}

		e.metrics.recordAttempt(ctx, service)
		err = op(ctx, ep)
		if err == nil {
			e.source.RecordSuccess(service, ep)
			return nil
		}

		if !errors.IsRetryable(err) {
			return err
		}
		e.source.RecordFailure(service, ep)
		lastErr = err

		if attempt >= maxAttempts {
			e.log.Warn("retries exhausted", logger.Fields(
				logger.FieldService, service,
				logger.FieldAttempt, attempt,
				logger.FieldError, lastErr.Error(),
			))
			return errors.RetriesExhausted(service, attempt, lastErr)
		}

		delay := e.policy.DelayForAttempt(attempt)
		e.log.Debug("attempt failed, backing off", logger.Fields(
			logger.FieldService, service,
			logger.FieldEndpoint, ep.URL,
			logger.FieldAttempt, attempt,
			logger.FieldDuration, delay,
			logger.FieldError, err.Error(),
		))
		e.metrics.recordRetry(ctx, service)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// Do runs fn through an executor and returns its typed result.
func Do[T any](ctx context.Context, e *Executor, service string, fn func(ctx context.Context, ep discovery.Endpoint) (T, error)) (T, error) {
	var out T
	err := e.Execute(ctx, service, func(ctx context.Context, ep discovery.Endpoint) error {
		v, err := fn(ctx, ep)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
