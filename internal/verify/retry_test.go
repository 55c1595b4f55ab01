package verify

import (
	"errors"
	"testing"
	"time"

	"treko/internal/config"
)

func testPolicy() *RetryPolicy {
	return PolicyFromConfig(config.VerifyConfig{MaxAttempts: 3, BackoffSec: 1})
}

func TestRetryPolicyClassification(t *testing.T) {
	policy := testPolicy()

	if !policy.ShouldRetry(errors.New("connection refused"), 1) {
		t.Error("expected connection error to be retryable")
	}
	if policy.ShouldRetry(errors.New("timeout"), 4) {
		t.Error("should not retry after max attempts")
	}
	if policy.ShouldRetry(ErrNoFace, 1) {
		t.Error("a no-face verdict must not be retried")
	}
	if policy.ShouldRetry(nil, 1) {
		t.Error("nil error should not be retryable")
	}
}

func TestRetryPolicyBackoff(t *testing.T) {
	policy := testPolicy()

	if delay := policy.NextDelay(1); delay != 1*time.Second {
		t.Errorf("expected 1s delay, got %v", delay)
	}
	if delay := policy.NextDelay(2); delay != 2*time.Second {
		t.Errorf("expected 2s delay, got %v", delay)
	}
	if delay := policy.NextDelay(3); delay != 4*time.Second {
		t.Errorf("expected 4s delay, got %v", delay)
	}
}

func TestRetryPolicyMaxDelayCap(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  10,
		InitialDelay: 1 * time.Second,
		Multiplier:   10.0,
		MaxDelay:     30 * time.Second,
	}
	if delay := policy.NextDelay(5); delay > policy.MaxDelay {
		t.Errorf("delay %v exceeds max delay %v", delay, policy.MaxDelay)
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := PolicyFromConfig(config.VerifyConfig{})
	if policy.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", policy.MaxAttempts)
	}
	if policy.InitialDelay != 5*time.Second {
		t.Errorf("expected 5s initial delay, got %v", policy.InitialDelay)
	}
}

func TestRetryPolicyExecuteSuccess(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     10 * time.Millisecond,
	}
	calls := 0

	err := policy.Execute(func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryPolicyExecuteVerdictStopsEarly(t *testing.T) {
	policy := testPolicy()
	calls := 0

	err := policy.Execute(func() error {
		calls++
		return ErrNoFace
	})

	if !errors.Is(err, ErrNoFace) {
		t.Errorf("expected ErrNoFace, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call for an image verdict, got %d", calls)
	}
}

func TestRetryPolicyExecuteAllFail(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  2,
		InitialDelay: 1 * time.Millisecond,
		Multiplier:   1.0,
		MaxDelay:     10 * time.Millisecond,
	}
	calls := 0

	err := policy.Execute(func() error {
		calls++
		return errors.New("timeout")
	})

	if err == nil {
		t.Error("expected error after all attempts exhausted")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
