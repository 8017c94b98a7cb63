package forward

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Policy decides whether a failed attempt should be retried and how long to
// wait before the next one. It is a pure value so it can be unit-tested in
// isolation from any network call.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BackoffBase is the base for the exponential backoff schedule.
	BackoffBase time.Duration
}

// Retryable reports whether the attempt represents a transient failure:
// a network-level error, a 408, or any 5xx. Other statuses, including the
// remaining 4xx range, are permanent rejections and are not retried.
func (p Policy) Retryable(a Attempt) bool {
	if a.Err != nil {
		// A canceled caller is not a destination failure.
		return !errors.Is(a.Err, context.Canceled)
	}
	if a.StatusCode == http.StatusRequestTimeout {
		return true
	}
	return a.StatusCode >= 500 && a.StatusCode <= 599
}

// Backoff returns the wait between attempt n and n+1: BackoffBase * 2^(n-1),
// so a 2s base yields 2s, 4s, 8s for attempts 1-3.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BackoffBase << (attempt - 1)
}

// Attempts returns the total number of attempts the policy allows.
func (p Policy) Attempts() int {
	return p.MaxRetries + 1
}
