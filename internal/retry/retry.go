// Package retry wraps exponential backoff for calls to flaky upstream
// services. Callers mark non-retryable failures with Permanent; everything
// else is tried again on a growing interval.
package retry

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config controls the backoff schedule.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64

	// InitialInterval is the delay before the first retry.
	InitialInterval time.Duration

	// MaxInterval caps the delay between retries.
	MaxInterval time.Duration
}

// DefaultConfig returns the schedule used for OpenAI calls: three retries
// starting at half a second.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// Do runs op until it succeeds, returns a permanent error, or the retry
// budget is exhausted. Context cancellation stops the schedule between
// attempts.
func Do(ctx context.Context, cfg Config, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, cfg.MaxRetries), ctx))
}

// Permanent marks err as non-retryable; Do returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// RetryableStatus reports whether an HTTP status is worth retrying.
// Rate limits and server errors are transient; other 4xx responses mean the
// request itself is wrong and will not improve with repetition.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
