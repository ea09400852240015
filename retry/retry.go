// Package retry adds bounded retry and rate limiting around calls to
// external services. Both are decorators so that extraction logic stays
// free of resilience concerns.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultJitter is the fraction by which each delay is randomly stretched
// or shrunk.
const DefaultJitter = 0.2

// DefaultDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Policy controls how an operation is retried. The zero value makes a
// single attempt.
type Policy struct {
	// Delays holds the wait before each retry. The operation is attempted
	// at most len(Delays)+1 times.
	Delays []time.Duration

	// Jitter randomizes each delay by up to this fraction in either direction.
	Jitter float64

	// AttemptTimeout bounds each attempt. Zero means no per-attempt limit.
	AttemptTimeout time.Duration

	// Retryable reports whether an error is worth another attempt.
	// Nil retries every error.
	Retryable func(error) bool

	// OnRetry is called before waiting for the next attempt.
	// Attempt is the number of the attempt about to be made, starting at 2.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy returns the default delays with jitter.
func DefaultPolicy() Policy {
	return Policy{Delays: DefaultDelays(), Jitter: DefaultJitter}
}

// Do calls fn until it succeeds, the delays are exhausted, the error is not
// retryable, or ctx is done. It returns the last error from fn, or the
// context error if ctx ended while waiting.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	maxAttempts := len(p.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := p.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		if p.Retryable != nil && !p.Retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt+2, err)
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

func (p Policy) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.AttemptTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
	defer cancel()
	return fn(ctx)
}

func (p Policy) delay(attempt int) time.Duration {
	d := p.Delays[attempt]
	if p.Jitter <= 0 || d <= 0 {
		return d
	}
	return Jittered(d, p.Jitter, rand.Float64())
}

// Jittered scales d by a factor in [1-jitter, 1+jitter) chosen by r in [0, 1).
func Jittered(d time.Duration, jitter, r float64) time.Duration {
	return time.Duration(float64(d) * (1 + jitter*(2*r-1)))
}
