package llm

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes how extraction calls are retried on transient
// failures (rate limits and transport errors). It is a plain value so tests
// can shrink the delays to nothing.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// The total attempt count is MaxRetries + 1.
	MaxRetries uint64

	// BaseDelay is the wait before the first retry; it doubles on each
	// subsequent retry.
	BaseDelay time.Duration
}

// DefaultRetryPolicy matches the completion service's rate-limit etiquette:
// three attempts total with 2s and 4s waits between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  2 * time.Second,
	}
}

// Backoff builds a fresh backoff schedule for one logical call. Backoff
// state is per-call, so a policy value can be shared freely.
func (p RetryPolicy) Backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Nanosecond
	}
	return retry.WithMaxRetries(p.MaxRetries, retry.NewExponential(base))
}
