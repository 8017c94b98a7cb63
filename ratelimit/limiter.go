// Package ratelimit provides per-tenant token bucket rate limiting for the
// webhook ingest path.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter implements token bucket rate limiting keyed by tenant. Buckets are
// created lazily on first use and start full, so a quiet tenant can burst up
// to its per-second rate.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
	rate     float64 // tokens per second
}

// New creates a new rate limiter.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether tenantID may proceed under the given per-second rate,
// consuming one token when it may. A rate of 0 means unlimited.
func (l *Limiter) Allow(tenantID string, rate int) bool {
	if rate <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.getOrCreateBucket(tenantID, float64(rate))
	b.refill(l.now())

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Reset clears the rate limit state for a tenant.
func (l *Limiter) Reset(tenantID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, tenantID)
}

func (l *Limiter) getOrCreateBucket(tenantID string, rate float64) *bucket {
	b, ok := l.buckets[tenantID]
	if !ok {
		b = &bucket{
			tokens:   rate, // start full
			lastFill: l.now(),
			rate:     rate,
		}
		l.buckets[tenantID] = b
	}
	return b
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * b.rate
	if b.tokens > b.rate {
		b.tokens = b.rate // cap at burst size = rate
	}
	b.lastFill = now
}
