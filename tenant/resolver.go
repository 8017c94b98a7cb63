package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/hookgate/observability"
	"github.com/xraph/hookgate/vault"
)

// Secret name suffixes, matching the vault's per-tenant naming convention.
const (
	secretSuffix    = "--WebhookSecret"
	targetURLSuffix = "--TargetUrl"
)

// ErrNotFound is returned when the vault holds no credentials for the tenant.
// Either of the two per-tenant secrets missing makes the tenant unknown.
var ErrNotFound = errors.New("tenant: credentials not found")

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// CacheTTL bounds how long resolved credentials are served without a
	// fresh vault fetch. Zero disables caching.
	CacheTTL time.Duration

	// Metrics, when set, records cache hit/miss counters.
	Metrics *observability.Metrics
}

// Resolver resolves tenant identifiers to credentials, caching successful
// resolutions for the configured TTL.
//
// Concurrent misses for the same tenant each fetch independently; fetched
// values are immutable, so the duplicate work is harmless and the last
// cache writer wins.
type Resolver struct {
	vault   vault.Client
	cache   *Cache
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewResolver creates a Resolver backed by the given vault client.
func NewResolver(v vault.Client, cfg ResolverConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		vault:   v,
		cache:   NewCache(cfg.CacheTTL),
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// Cache returns the resolver's credentials cache.
func (r *Resolver) Cache() *Cache { return r.cache }

// Resolve returns the credentials for tenantID, from cache when fresh,
// otherwise by fetching both per-tenant secrets from the vault concurrently.
//
// Returns ErrNotFound when either secret is missing. Any other vault error
// propagates unwrapped semantics as a resolution failure and is not cached.
func (r *Resolver) Resolve(ctx context.Context, tenantID string) (*Credentials, error) {
	if creds, ok := r.cache.Get(tenantID); ok {
		if r.metrics != nil {
			r.metrics.SecretCacheHits.Inc()
		}
		r.logger.DebugContext(ctx, "credentials cache hit", "tenant_id", tenantID)
		return creds, nil
	}

	if r.metrics != nil {
		r.metrics.SecretCacheMisses.Inc()
	}
	r.logger.DebugContext(ctx, "fetching tenant credentials", "tenant_id", tenantID)

	// Both fetches run concurrently and are jointly awaited. A failure in
	// one does not cancel the other.
	var (
		wg                   sync.WaitGroup
		secret, targetURL    string
		secretErr, targetErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		secret, secretErr = r.vault.GetSecret(ctx, tenantID+secretSuffix)
	}()
	go func() {
		defer wg.Done()
		targetURL, targetErr = r.vault.GetSecret(ctx, tenantID+targetURLSuffix)
	}()
	wg.Wait()

	// Either secret missing makes the tenant unknown, regardless of what
	// happened to the other fetch.
	if errors.Is(secretErr, vault.ErrSecretNotFound) || errors.Is(targetErr, vault.ErrSecretNotFound) {
		return nil, ErrNotFound
	}
	if secretErr != nil {
		return nil, fmt.Errorf("tenant: fetch webhook secret: %w", secretErr)
	}
	if targetErr != nil {
		return nil, fmt.Errorf("tenant: fetch target url: %w", targetErr)
	}

	creds := &Credentials{
		TenantID:  tenantID,
		Secret:    secret,
		TargetURL: targetURL,
	}
	r.cache.Set(tenantID, creds)

	return creds, nil
}
