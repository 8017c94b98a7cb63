package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/hookgate"

// Tracer provides OpenTelemetry tracing for Hookgate.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Hookgate tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartDeliverySpan starts a new span for one inbound delivery. The span
// carries the tenant id only — never payload bytes or signature material.
func (t *Tracer) StartDeliverySpan(ctx context.Context, tenantID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "hookgate.delivery",
		trace.WithAttributes(
			attribute.String("hookgate.tenant_id", tenantID),
		),
	)
}

// EndDeliverySpan ends a delivery span with the terminal outcome.
func (t *Tracer) EndDeliverySpan(span trace.Span, status, errDetail string) {
	span.SetAttributes(attribute.String("hookgate.status", status))
	if errDetail != "" {
		span.SetAttributes(attribute.String("hookgate.error", errDetail))
	}
	span.End()
}
