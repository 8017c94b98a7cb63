package hookgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/hookgate/dlq"
	"github.com/xraph/hookgate/forward"
	"github.com/xraph/hookgate/observability"
	"github.com/xraph/hookgate/queue"
	"github.com/xraph/hookgate/ratelimit"
	"github.com/xraph/hookgate/signature"
	"github.com/xraph/hookgate/tenant"
	"github.com/xraph/hookgate/vault"
)

// Gateway is the root webhook relay pipeline.
type Gateway struct {
	config    Config
	vault     vault.Client
	queue     queue.Queue
	resolver  *tenant.Resolver
	forwarder *forward.Forwarder
	sink      *dlq.Sink
	limiter   *ratelimit.Limiter
	metrics   *observability.Metrics
	tracer    *observability.Tracer
	logger    *slog.Logger
}

// New creates a new Gateway with the given options.
func New(opts ...Option) (*Gateway, error) {
	g := &Gateway{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.vault == nil {
		return nil, ErrNoVault
	}
	if g.queue == nil {
		return nil, ErrNoQueue
	}
	g.wireServices()
	return g, nil
}

// wireServices initializes the internal services after options have been applied.
func (g *Gateway) wireServices() {
	g.resolver = tenant.NewResolver(g.vault, tenant.ResolverConfig{
		CacheTTL: g.config.CacheTTL,
		Metrics:  g.metrics,
	}, g.logger)

	g.forwarder = forward.New(forward.Config{
		RequestTimeout: g.config.RequestTimeout,
		MaxRetries:     g.config.MaxRetries,
		BackoffBase:    g.config.BackoffBase,
	}, g.logger)

	g.sink = dlq.NewSink(g.queue, g.logger)
	g.limiter = ratelimit.New()
}

// Request is one inbound webhook delivery. It is scoped to a single call to
// Deliver and is never persisted.
type Request struct {
	// TenantID identifies the webhook customer, taken from the route.
	TenantID string

	// Payload is the raw request body, relayed byte-for-byte.
	Payload []byte

	// Signature is the presented signature header value, possibly prefixed
	// with "sha256=". Empty when the header was absent.
	Signature string
}

// Deliver runs the per-request pipeline: resolve tenant credentials, verify
// the signature, forward the payload, and dead-letter on terminal failure.
//
// The gates, in order:
//  1. Non-empty tenant id, else ErrMissingTenant.
//  2. Non-empty payload, else ErrEmptyPayload.
//  3. Per-tenant rate budget, else ErrRateLimited.
//  4. Credential resolution, ErrUnknownTenant when the vault has no entry.
//  5. Signature verification, ErrInvalidSignature on mismatch.
//  6. Forward with internal retries; exhaustion enqueues a dead-letter
//     record and returns a *DeliveryError.
//
// A nil return means the destination acknowledged the payload with a 2xx.
// No state is carried between invocations; retries happen only inside the
// forwarder.
func (g *Gateway) Deliver(ctx context.Context, req *Request) error {
	if strings.TrimSpace(req.TenantID) == "" {
		return ErrMissingTenant
	}
	if len(req.Payload) == 0 {
		return ErrEmptyPayload
	}
	if !g.limiter.Allow(req.TenantID, g.config.RateLimit) {
		g.logger.WarnContext(ctx, "rate limit exceeded", "tenant_id", req.TenantID)
		return ErrRateLimited
	}

	if g.metrics != nil {
		g.metrics.ReceivedTotal.Inc()
	}

	var span trace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.StartDeliverySpan(ctx, req.TenantID)
	}

	start := time.Now()
	err := g.deliver(ctx, req, start)

	if span != nil {
		var de *DeliveryError
		switch {
		case err == nil:
			g.tracer.EndDeliverySpan(span, "delivered", "")
		case errors.As(err, &de):
			g.tracer.EndDeliverySpan(span, "failed", de.Detail)
		default:
			g.tracer.EndDeliverySpan(span, "rejected", err.Error())
		}
	}

	return err
}

// deliver runs gates 4-6. Gates 1-3 and the span bookkeeping live in Deliver.
func (g *Gateway) deliver(ctx context.Context, req *Request, start time.Time) error {
	creds, err := g.resolver.Resolve(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			g.logger.WarnContext(ctx, "unknown tenant", "tenant_id", req.TenantID)
			return ErrUnknownTenant
		}
		return fmt.Errorf("hookgate: resolve tenant %s: %w", req.TenantID, err)
	}

	if !signature.Verify(creds.Secret, req.Payload, req.Signature) {
		g.logger.WarnContext(ctx, "invalid signature", "tenant_id", req.TenantID)
		if g.metrics != nil {
			g.metrics.RecordDelivery("rejected", time.Since(start).Seconds())
		}
		return ErrInvalidSignature
	}

	out := g.forwarder.Forward(ctx, creds.TargetURL, req.Payload)

	// An aborted caller surfaces as a cancellation, not a delivery failure.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("hookgate: delivery aborted: %w", ctxErr)
	}

	if out.Success {
		if g.metrics != nil {
			g.metrics.RecordDelivery("delivered", time.Since(start).Seconds())
		}
		g.logger.DebugContext(ctx, "webhook delivered",
			"tenant_id", req.TenantID, "status", out.StatusCode)
		return nil
	}

	rec := dlq.NewRecord(req.TenantID, creds.TargetURL, req.Payload, out.Error)
	if enqErr := g.sink.Enqueue(ctx, rec); enqErr != nil {
		// The caller still gets the delivery failure; the record is at risk
		// of loss and must be visible in logs and metrics.
		g.logger.ErrorContext(ctx, "dead letter enqueue failed",
			"tenant_id", req.TenantID, "record_id", rec.ID, "error", enqErr)
		if g.metrics != nil {
			g.metrics.DeadLetterFailures.Inc()
		}
	} else if g.metrics != nil {
		g.metrics.DeadLettersTotal.Inc()
	}

	if g.metrics != nil {
		g.metrics.RecordDelivery("failed", time.Since(start).Seconds())
	}
	g.logger.WarnContext(ctx, "delivery failed permanently",
		"tenant_id", req.TenantID, "status", out.StatusCode, "error", out.Error)

	return &DeliveryError{Detail: out.Error, StatusCode: out.StatusCode}
}
