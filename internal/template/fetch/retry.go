package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

// Retry policy shared by all fetchers.
const (
	// MaxAttempts is the number of attempts per HTTP request.
	MaxAttempts = 3
	// backoffBase is the delay before the second attempt.
	backoffBase = 1 * time.Second
	// backoffCap is the maximum delay between attempts.
	backoffCap = 10 * time.Second
)

// Backoff returns the delay to sleep after a failed attempt (0-based).
// The base delay doubles per attempt and is capped.
func Backoff(attempt int) time.Duration {
	delay := backoffBase << attempt
	if delay > backoffCap || delay <= 0 {
		return backoffCap
	}
	return delay
}

// WithRetry runs op up to maxAttempts times, sleeping backoff(attempt)
// between attempts. Only transient errors are retried; the final attempt's
// error propagates unwrapped.
func WithRetry[T any](ctx context.Context, maxAttempts int, backoff func(int) time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= maxAttempts-1 || !isRetryable(err) {
			return zero, err
		}
		delay := backoff(attempt)
		debug.Debug("[fetch] attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// isRetryable reports whether err is a transient fetch error.
func isRetryable(err error) bool {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		return fetchErr.retryable()
	}
	return false
}
