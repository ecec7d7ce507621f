// Package retry wraps network-bound operations in an injectable retry
// policy: bounded attempts, exponential backoff with optional full
// jitter, and an error classifier that short-circuits non-retryable
// failures. Policies are stateless and safe for concurrent use.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the delay before the first retry; it doubles each
	// subsequent attempt.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay. Zero means uncapped.
	MaxDelay time.Duration
	// Jitter randomizes each delay over [0, delay] to avoid synchronized
	// retries.
	Jitter bool
	// IsRetryable classifies errors. A nil classifier retries everything.
	IsRetryable func(error) bool
}

// Default returns the policy used by the orchestrator: three attempts,
// one second base delay doubling up to thirty seconds, no jitter.
func Default() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// Delay returns the backoff before retry attempt n (1-indexed).
func (p Policy) Delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter && d > 0 {
		d = time.Duration(rand.Float64() * float64(d)) //nolint:gosec // jitter intentionally uses non-crypto rand
	}
	return d
}

// Do runs fn under the policy. Non-retryable errors are returned
// immediately; retryable ones are retried with backoff until the attempt
// budget is spent. Context cancellation aborts the wait and returns the
// context error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.IsRetryable != nil && !p.IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(p.Delay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func(ctx context.Context) error {
		var fnErr error
		out, fnErr = fn(ctx)
		return fnErr
	})
	return out, err
}
