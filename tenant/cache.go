package tenant

import (
	"sync"
	"time"
)

// Cache is a TTL-bounded in-memory store of resolved credentials. Entries are
// never returned past their TTL; an expired read is indistinguishable from a
// miss. Eviction is passive — expired entries are overwritten by the next Set.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	creds     *Credentials
	expiresAt time.Time
}

// NewCache creates a credentials cache with the given TTL. A zero TTL
// disables caching entirely: every Get is a miss.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached credentials for tenantID, or false on a miss or an
// expired entry.
func (c *Cache) Get(tenantID string) (*Credentials, bool) {
	if c.ttl == 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tenantID]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.creds, true
}

// Set stores credentials for tenantID with expiry TTL from now. Concurrent
// writers for the same tenant are allowed; the last writer wins.
func (c *Cache) Set(tenantID string, creds *Credentials) {
	if c.ttl == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tenantID] = cacheEntry{
		creds:     creds,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Expire removes the entry for tenantID, forcing the next Get to miss.
func (c *Cache) Expire(tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
