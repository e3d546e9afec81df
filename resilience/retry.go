package resilience

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Default backoff settings.
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultMaxDelay     = 5 * time.Second
	DefaultMultiplier   = 2.0
)

// BackoffPolicy maps an attempt number to a wait duration. It is
// immutable after construction and total over positive attempts.
type BackoffPolicy struct {
	// MaxAttempts is the total attempt budget, including the first.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// InitialDelay is the nominal delay after the first failed attempt.
	InitialDelay time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
	// Multiplier grows the delay each attempt. Must be >= 1.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`
	// Jitter perturbs each delay by a uniform random fraction of the
	// nominal value, up to ±Jitter. Range [0, 0.5]; zero disables jitter
	// and makes DelayForAttempt deterministic.
	Jitter float64 `yaml:"jitter" mapstructure:"jitter"`
}

// DefaultBackoffPolicy returns the standard policy: three attempts,
// 500ms initial delay doubling to a 5s ceiling, no jitter.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
	}
}

// NoRetry returns a policy that allows a single attempt.
func NoRetry() BackoffPolicy {
	return BackoffPolicy{MaxAttempts: 1, Multiplier: 1}
}

// Validate checks the policy invariants.
func (p BackoffPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("resilience: max_attempts must be >= 1")
	}
	if p.InitialDelay < 0 {
		return fmt.Errorf("resilience: initial_delay must be >= 0")
	}
	if p.MaxDelay < 0 {
		return fmt.Errorf("resilience: max_delay must be >= 0")
	}
	if p.Multiplier < 1 {
		return fmt.Errorf("resilience: multiplier must be >= 1")
	}
	if p.Jitter < 0 || p.Jitter > 0.5 {
		return fmt.Errorf("resilience: jitter must be in [0, 0.5]")
	}
	return nil
}

// DelayForAttempt returns the wait after the nth failed attempt,
// 1-indexed: initial * multiplier^(n-1), clamped to [0, MaxDelay].
// Without jitter the result is non-decreasing in n and
// DelayForAttempt(1) == InitialDelay. Attempts beyond MaxAttempts are
// still computable; refusing to retry past the budget is the caller's
// job.
func (p BackoffPolicy) DelayForAttempt(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}

	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	if p.Jitter > 0 {
		delay += (rand.Float64()*2 - 1) * p.Jitter * delay
		if delay > float64(p.MaxDelay) {
			delay = float64(p.MaxDelay)
		}
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
