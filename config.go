package hookgate

import "time"

// Config holds the configuration for a Gateway instance.
type Config struct {
	// CacheTTL is how long resolved tenant credentials may be served from
	// the in-memory cache before a fresh vault fetch is required.
	CacheTTL time.Duration

	// RequestTimeout is the HTTP timeout per forward attempt.
	RequestTimeout time.Duration

	// MaxRetries is the number of retries after the initial forward attempt.
	MaxRetries int

	// BackoffBase is the base for the exponential backoff between attempts:
	// the wait after attempt n is BackoffBase * 2^(n-1).
	BackoffBase time.Duration

	// RateLimit is the per-tenant ingest budget in requests per second.
	// Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:       5 * time.Minute,
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		BackoffBase:    2 * time.Second,
	}
}
