package fetcher

import "time"

// RetryPolicy is an explicit, composable retry policy: a bounded attempt
// count plus a deterministic delay function. It is a plain value so it can
// be unit-tested against simulated transient failures without the network.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry; it doubles on each
	// subsequent retry.
	BaseDelay time.Duration

	// MaxDelay caps the per-retry delay.
	MaxDelay time.Duration
}

// Attempts returns the total number of attempts the policy allows.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

// Delay returns the backoff before the given retry (1-based).
// Delay(1) == BaseDelay, Delay(2) == 2*BaseDelay, capped at MaxDelay.
func (p RetryPolicy) Delay(retry int) time.Duration {
	if retry <= 0 || p.BaseDelay <= 0 {
		return 0
	}
	d := p.BaseDelay << uint(retry-1)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
