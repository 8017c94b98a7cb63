package forward

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Config holds forwarder configuration.
type Config struct {
	RequestTimeout time.Duration
	MaxRetries     int
	BackoffBase    time.Duration
}

// Forwarder delivers payloads to destination URLs, retrying transient
// failures with exponential backoff. Backoff sleeps observe the caller's
// context so an aborted request does not hold resources.
type Forwarder struct {
	sender *sender
	policy Policy
	sleep  func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

// New creates a Forwarder. Zero config fields fall back to 30s timeout,
// 3 retries, and a 2s backoff base.
func New(cfg Config, logger *slog.Logger) *Forwarder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = 2 * time.Second
	}
	return &Forwarder{
		sender: newSender(cfg.RequestTimeout),
		policy: Policy{MaxRetries: cfg.MaxRetries, BackoffBase: cfg.BackoffBase},
		sleep:  sleepContext,
		logger: logger,
	}
}

// Forward POSTs payload to targetURL, applying the retry policy around each
// attempt. The returned Outcome reflects either the first 2xx response or
// the final attempt after exhaustion.
func (f *Forwarder) Forward(ctx context.Context, targetURL string, payload []byte) Outcome {
	var last Attempt

	attempts := f.policy.Attempts()
	for n := 1; n <= attempts; n++ {
		last = f.sender.post(ctx, targetURL, payload)

		if last.StatusCode >= 200 && last.StatusCode < 300 {
			f.logger.DebugContext(ctx, "webhook forwarded",
				"target_url", targetURL, "status", last.StatusCode, "attempt", n)
			return Outcome{Success: true, StatusCode: last.StatusCode}
		}

		if n == attempts || !f.policy.Retryable(last) {
			break
		}

		delay := f.policy.Backoff(n)
		f.logger.DebugContext(ctx, "retrying webhook forward",
			"target_url", targetURL, "attempt", n, "delay", delay,
			"status", last.StatusCode)

		if err := f.sleep(ctx, delay); err != nil {
			return Outcome{Error: err.Error()}
		}
	}

	return failedOutcome(last)
}

// failedOutcome translates the final attempt into a terminal Outcome with a
// human-readable error detail.
func failedOutcome(a Attempt) Outcome {
	if a.Err != nil {
		if isTimeout(a.Err) {
			return Outcome{Error: "Timeout after retries"}
		}
		return Outcome{Error: a.Err.Error()}
	}
	return Outcome{
		StatusCode: a.StatusCode,
		Error:      fmt.Sprintf("destination returned %d %s", a.StatusCode, http.StatusText(a.StatusCode)),
	}
}

// isTimeout reports whether the error is a per-attempt timeout rather than a
// generic network failure.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// sleepContext waits for d or until ctx is canceled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
