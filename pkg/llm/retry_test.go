package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
)

func TestRetryPolicy_AttemptCount(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

	attempts := 0
	err := retry.Do(context.Background(), policy.Backoff(), func(ctx context.Context) error {
		attempts++
		return retry.RetryableError(errors.New("still failing"))
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryPolicy_NonRetryableStopsImmediately(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

	attempts := 0
	err := retry.Do(context.Background(), policy.Backoff(), func(ctx context.Context) error {
		attempts++
		return errors.New("permanent")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryPolicy_BackoffDoubles(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 2 * time.Second}
	b := policy.Backoff()

	first, stop := b.Next()
	if stop {
		t.Fatal("backoff stopped on first retry")
	}
	second, stop := b.Next()
	if stop {
		t.Fatal("backoff stopped on second retry")
	}

	if first != 2*time.Second {
		t.Errorf("first delay = %v, want 2s", first)
	}
	if second != 4*time.Second {
		t.Errorf("second delay = %v, want 4s", second)
	}
}

func TestRetryPolicy_BackoffIsPerCall(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}

	// Exhaust one schedule, then confirm a fresh one still allows retries.
	b := policy.Backoff()
	b.Next()
	if _, stop := b.Next(); !stop {
		t.Error("first schedule should be exhausted")
	}

	if _, stop := policy.Backoff().Next(); stop {
		t.Error("fresh schedule should allow a retry")
	}
}
