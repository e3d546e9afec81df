package resilience

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
)

// fakeSource is a scripted EndpointSource that records health calls.
type fakeSource struct {
	mu         sync.Mutex
	endpoint   discovery.Endpoint
	resolveErr error
	resolves   int
	successes  int
	failures   int
}

func (s *fakeSource) Resolve(_ context.Context, service string) (discovery.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolves++
	if s.resolveErr != nil {
		return discovery.Endpoint{}, s.resolveErr
	}
	return s.endpoint, nil
}

func (s *fakeSource) RecordSuccess(service string, ep discovery.Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successes++
}

func (s *fakeSource) RecordFailure(service string, ep discovery.Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
}

func (s *fakeSource) counts() (resolves, successes, failures int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolves, s.successes, s.failures
}

func testEndpoint() discovery.Endpoint {
	ep, err := discovery.ParseEndpoint("vmapi", "http://10.0.0.1:80")
	if err != nil {
		panic(err)
	}
	return ep
}

func fastPolicy(attempts int) BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts:  attempts,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2,
	}
}

func newTestExecutor(t *testing.T, source EndpointSource, policy BackoffPolicy) *Executor {
	t.Helper()
	e, err := NewExecutor(source, policy, nil)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	return e
}

func TestExecuteSuccessFirstAttempt(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, DefaultBackoffPolicy())

	calls := 0
	err := e.Execute(context.Background(), "vmapi", func(_ context.Context, ep discovery.Endpoint) error {
		calls++
		if ep.URL != "http://10.0.0.1:80" {
			t.Errorf("unexpected endpoint %s", ep.URL)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one attempt, got %d", calls)
	}
	if _, successes, failures := source.counts(); successes != 1 || failures != 0 {
		t.Errorf("expected {successes:1, failures:0}, got {%d, %d}", successes, failures)
	}
}

func TestRetryableFailuresThenSuccess(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, fastPolicy(3))

	calls := 0
	start := time.Now()
	err := e.Execute(context.Background(), "vmapi", func(context.Context, discovery.Endpoint) error {
		calls++
		if calls < 3 {
			return errors.ServiceUnavailable("vmapi", 503)
		}
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	resolves, successes, failures := source.counts()
	if resolves != 3 {
		t.Errorf("expected re-resolve per attempt, got %d resolves", resolves)
	}
	if failures != 2 || successes != 1 {
		t.Errorf("expected {failures:2, successes:1}, got {%d, %d}", failures, successes)
	}
	// Backoff after attempts 1 and 2: 10ms + 20ms.
	if min := 30 * time.Millisecond; elapsed < min {
		t.Errorf("elapsed %v, expected at least %v of backoff", elapsed, min)
	}
}

func TestNonRetryableFailureIsTerminal(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, BackoffPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   2,
	})

	calls := 0
	start := time.Now()
	err := e.Execute(context.Background(), "vmapi", func(context.Context, discovery.Endpoint) error {
		calls++
		return errors.NotFound("vm 123")
	})
	elapsed := time.Since(start)

	if errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Fatalf("expected NOT_FOUND to pass through, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("expected no backoff wait, elapsed %v", elapsed)
	}
	if _, _, failures := source.counts(); failures != 0 {
		t.Errorf("non-retryable failure must not mark endpoint health, got %d failures", failures)
	}
}

func TestRetriesExhausted(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, fastPolicy(3))

	cause := errors.ConnectionFailed("vmapi", nil)
	err := e.Execute(context.Background(), "vmapi", func(context.Context, discovery.Endpoint) error {
		return cause
	})

	te, ok := errors.AsError(err)
	if !ok || te.Code != errors.ErrCodeRetriesExhausted {
		t.Fatalf("expected RETRIES_EXHAUSTED, got %v", err)
	}
	if te.Service != "vmapi" || te.Attempts != 3 {
		t.Errorf("expected service vmapi after 3 attempts, got %s/%d", te.Service, te.Attempts)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected exhaustion error to wrap the last failure")
	}
	if _, _, failures := source.counts(); failures != 3 {
		t.Errorf("expected a recorded failure per attempt, got %d", failures)
	}
}

func TestResolveFailureIsTerminal(t *testing.T) {
	source := &fakeSource{resolveErr: errors.DiscoveryUnavailable("vmapi", nil)}
	e := newTestExecutor(t, source, fastPolicy(3))

	calls := 0
	err := e.Execute(context.Background(), "vmapi", func(context.Context, discovery.Endpoint) error {
		calls++
		return nil
	})

	if errors.CodeOf(err) != errors.ErrCodeDiscoveryUnavailable {
		t.Fatalf("expected DISCOVERY_UNAVAILABLE, got %v", err)
	}
	if calls != 0 {
		t.Errorf("operation must not run without an endpoint, ran %d times", calls)
	}
	if resolves, _, _ := source.counts(); resolves != 1 {
		t.Errorf("resolution failures are terminal, got %d resolves", resolves)
	}
}

func TestExecuteCancelledDuringBackoff(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, BackoffPolicy{
		MaxAttempts:  3,
		InitialDelay: 5 * time.Second,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := e.Execute(ctx, "vmapi", func(context.Context, discovery.Endpoint) error {
		return errors.ServiceUnavailable("vmapi", 503)
	})

	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation should interrupt the backoff wait, took %v", elapsed)
	}
}

func TestExecuteCancelledBeforeStart(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, DefaultBackoffPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, "vmapi", func(context.Context, discovery.Endpoint) error {
		t.Error("operation must not run on a cancelled context")
		return nil
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDoReturnsTypedResult(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, fastPolicy(3))

	calls := 0
	got, err := Do(context.Background(), e, "vmapi", func(_ context.Context, ep discovery.Endpoint) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.Timeout("list VMs", nil)
		}
		return ep.URL, nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "http://10.0.0.1:80" {
		t.Errorf("unexpected result %q", got)
	}
	if calls != 2 {
		t.Errorf("expected retry before success, got %d calls", calls)
	}
}

func TestDoPropagatesError(t *testing.T) {
	source := &fakeSource{endpoint: testEndpoint()}
	e := newTestExecutor(t, source, NoRetry())

	_, err := Do(context.Background(), e, "vmapi", func(context.Context, discovery.Endpoint) (int, error) {
		return 0, errors.Unauthorized("vmapi")
	})
	if errors.CodeOf(err) != errors.ErrCodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestNewExecutorRejectsInvalidPolicy(t *testing.T) {
	if _, err := NewExecutor(&fakeSource{}, BackoffPolicy{MaxAttempts: 0}, nil); err == nil {
		t.Error("expected invalid policy to be rejected")
	}
}
