// Package dlq captures webhook deliveries that exhausted their retry budget
// and hands them to a durable queue for offline inspection or replay.
package dlq

import (
	"time"

	"github.com/xraph/hookgate/id"
)

// Record is the dead-letter payload enqueued after a failed delivery. It
// carries enough context to replay the webhook by hand: the original payload,
// the destination it was meant for, and the last delivery error.
type Record struct {
	ID        id.ID     `json:"id"`
	TenantID  string    `json:"tenantId"`
	TargetURL string    `json:"targetUrl"`
	Payload   string    `json:"payload"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failedAt"`
}

// NewRecord builds a dead-letter record for a delivery that failed
// permanently, stamped with a fresh ID and the current UTC time.
func NewRecord(tenantID, targetURL string, payload []byte, errDetail string) Record {
	return Record{
		ID:        id.NewDeadLetterID(),
		TenantID:  tenantID,
		TargetURL: targetURL,
		Payload:   string(payload),
		Error:     errDetail,
		FailedAt:  time.Now().UTC(),
	}
}
