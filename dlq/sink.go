package dlq

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/xraph/hookgate/queue"
)

// Sink serializes dead-letter records and pushes them onto a durable queue.
// Records are JSON-encoded and then base64-encoded so queue consumers can
// treat messages as plain text regardless of payload content.
type Sink struct {
	queue  queue.Queue
	logger *slog.Logger
}

// NewSink creates a sink writing to q. A nil logger falls back to
// slog.Default.
func NewSink(q queue.Queue, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}

	return &Sink{queue: q, logger: logger}
}

// Enqueue encodes rec and sends it to the queue.
func (s *Sink) Enqueue(ctx context.Context, rec Record) error {
	s.logger.WarnContext(ctx, "enqueueing dead letter",
		slog.String("id", rec.ID.String()),
		slog.String("tenant_id", rec.TenantID),
		slog.String("target_url", rec.TargetURL),
		slog.String("error", rec.Error),
	)

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("dlq: marshal record %s: %w", rec.ID, err)
	}

	msg := base64.StdEncoding.EncodeToString(raw)
	if err := s.queue.Send(ctx, msg); err != nil {
		return fmt.Errorf("dlq: enqueue record %s: %w", rec.ID, err)
	}

	return nil
}

// Decode reverses the sink's encoding. It is the consumer-side counterpart
// of Enqueue and is used by tooling that drains the queue.
func Decode(msg string) (Record, error) {
	raw, err := base64.StdEncoding.DecodeString(msg)
	if err != nil {
		return Record{}, fmt.Errorf("dlq: decode message: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("dlq: unmarshal record: %w", err)
	}

	return rec, nil
}
