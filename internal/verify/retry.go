package verify

import (
	"math"
	"strings"
	"time"

	"treko/internal/config"
)

// RetryPolicy controls how failed verification calls are retried with
// exponential backoff.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// PolicyFromConfig builds the retry policy from the verification config,
// falling back to 3 attempts with a 5s initial delay.
func PolicyFromConfig(conf config.VerifyConfig) *RetryPolicy {
	attempts := conf.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := time.Duration(conf.BackoffSec) * time.Second
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	return &RetryPolicy{
		MaxAttempts:  attempts,
		InitialDelay: backoff,
		Multiplier:   2.0,
		MaxDelay:     time.Minute,
	}
}

// ShouldRetry returns true if the error is retryable and the attempt count
// has not exceeded MaxAttempts.
func (p *RetryPolicy) ShouldRetry(err error, attempt int) bool {
	if attempt > p.MaxAttempts {
		return false
	}
	return p.isRetryable(err)
}

// isRetryable classifies errors by their message. Transport failures retry;
// verdicts about the image itself do not. Unknown errors default to
// retryable.
func (p *RetryPolicy) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "unavailable") {
		return true
	}

	if strings.Contains(msg, "no face") ||
		strings.Contains(msg, "invalid") {
		return false
	}

	return true
}

// NextDelay returns the backoff delay for the given attempt number
// (1-indexed). The delay is InitialDelay * Multiplier^(attempt-1), capped at
// MaxDelay.
func (p *RetryPolicy) NextDelay(attempt int) time.Duration {
	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// Execute runs fn up to MaxAttempts times, sleeping between retries with
// exponential backoff. Returns nil on success or the last error if all
// attempts fail or the error is non-retryable.
func (p *RetryPolicy) Execute(fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !p.ShouldRetry(err, attempt) {
			return err
		}
		if attempt < p.MaxAttempts {
			time.Sleep(p.NextDelay(attempt))
		}
	}
	return lastErr
}
