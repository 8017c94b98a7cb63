// Package hookgate implements a multi-tenant inbound webhook relay.
//
// Hookgate is a library — not a service. Import it into your application to
// accept webhook deliveries on per-tenant routes, authenticate them with a
// tenant-specific HMAC-SHA256 signature, and forward the verified payload to
// the tenant's configured destination with bounded retries. Deliveries that
// exhaust the retry policy are captured in a durable dead-letter queue rather
// than dropped.
//
// Key features:
//   - Tenant credential resolution from a pluggable secret store (vault)
//     with a TTL-bounded in-memory cache
//   - Constant-time HMAC-SHA256 signature verification tolerant of the
//     "sha256=" prefix and mixed-case hex digests
//   - Exponential backoff retries for transient destination failures
//   - Dead-letter capture to a pluggable durable queue (Redis, RabbitMQ)
//   - Byte-transparent relaying: payloads are never inspected or rewritten
//
// Quick start:
//
//	gw, err := hookgate.New(
//	    hookgate.WithVault(vaultClient),
//	    hookgate.WithQueue(deadLetterQueue),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = gw.Deliver(ctx, &hookgate.Request{
//	    TenantID:  "acme",
//	    Payload:   body,
//	    Signature: r.Header.Get(api.SignatureHeader),
//	})
//
// The api package provides a ready-made HTTP handler exposing
// POST /webhook/{tenantId} on top of a Gateway.
package hookgate
