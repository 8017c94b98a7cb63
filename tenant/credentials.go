// Package tenant resolves tenant identifiers to their webhook credentials.
//
// Resolution is backed by a vault client and fronted by a TTL-bounded
// in-memory cache so the hot path does not pay a remote round trip on every
// request.
package tenant

// Credentials is the resolved secret material for one tenant. Values are
// immutable once fetched; a refreshed fetch replaces the whole struct.
type Credentials struct {
	// TenantID is the tenant the credentials belong to.
	TenantID string

	// Secret is the shared HMAC signing secret. Never logged.
	Secret string

	// TargetURL is the destination the tenant's webhooks are forwarded to.
	TargetURL string
}
