// Package resilience retries operations that can fail transiently, such as
// a rebuild that races an editor's save of the page template or folio.yaml.
package resilience

import (
	"context"
	"errors"
	"time"
)

// Backoff bounds used when a policy leaves them unset.
const (
	DefaultBaseDelay = 100 * time.Millisecond
	DefaultMaxDelay  = 5 * time.Second
)

// RetryPolicy defines the retry behavior for an operation.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry; it doubles per retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// RetryableErrors restricts retries to errors matching one of these
	// sentinels. When empty every error except context errors is retried.
	RetryableErrors []error

	// OnRetry, when set, is called before each retry with the 1-based
	// retry number, the error that caused it and the delay.
	OnRetry func(retry int, err error, delay time.Duration)
}

// Retry calls fn until it succeeds, returns a non-retryable error, the
// retries are exhausted or ctx is done. The last error is returned.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !policy.retryable(err) || attempt == policy.MaxRetries {
			break
		}

		delay := Backoff(attempt, policy.BaseDelay, policy.MaxDelay)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt+1, err, delay)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// Backoff returns baseDelay * 2^attempt, capped at maxDelay. Non-positive
// bounds fall back to the package defaults.
func Backoff(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	return min(delay, maxDelay)
}

func (p RetryPolicy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if len(p.RetryableErrors) == 0 {
		return true
	}
	for _, target := range p.RetryableErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
