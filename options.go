package hookgate

import (
	"log/slog"
	"time"

	"github.com/xraph/hookgate/observability"
	"github.com/xraph/hookgate/queue"
	"github.com/xraph/hookgate/vault"
)

// Option configures a Gateway instance.
type Option func(*Gateway) error

// WithVault sets the secret store used to resolve tenant credentials.
func WithVault(v vault.Client) Option {
	return func(g *Gateway) error {
		g.vault = v
		return nil
	}
}

// WithQueue sets the durable queue used for dead-letter capture.
func WithQueue(q queue.Queue) Option {
	return func(g *Gateway) error {
		g.queue = q
		return nil
	}
}

// WithLogger sets the structured logger for the Gateway instance.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		g.logger = logger
		return nil
	}
}

// WithCacheTTL sets the TTL for the tenant credentials cache.
func WithCacheTTL(d time.Duration) Option {
	return func(g *Gateway) error {
		g.config.CacheTTL = d
		return nil
	}
}

// WithRequestTimeout sets the HTTP timeout per forward attempt.
func WithRequestTimeout(d time.Duration) Option {
	return func(g *Gateway) error {
		g.config.RequestTimeout = d
		return nil
	}
}

// WithMaxRetries sets the number of retries after the initial forward attempt.
func WithMaxRetries(n int) Option {
	return func(g *Gateway) error {
		g.config.MaxRetries = n
		return nil
	}
}

// WithBackoffBase sets the base duration for exponential retry backoff.
func WithBackoffBase(d time.Duration) Option {
	return func(g *Gateway) error {
		g.config.BackoffBase = d
		return nil
	}
}

// WithRateLimit sets the per-tenant ingest budget in requests per second.
// Zero disables rate limiting.
func WithRateLimit(perSecond int) Option {
	return func(g *Gateway) error {
		g.config.RateLimit = perSecond
		return nil
	}
}

// WithMetrics sets the metric instruments recorded by the delivery pipeline.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gateway) error {
		g.metrics = m
		return nil
	}
}

// WithTracer sets the tracer used to span each delivery.
func WithTracer(t *observability.Tracer) Option {
	return func(g *Gateway) error {
		g.tracer = t
		return nil
	}
}
