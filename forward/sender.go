package forward

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBody = 1024 // 1KB cap on drained response bodies

// sender performs a single HTTP POST attempt.
type sender struct {
	client *http.Client
}

// newSender creates a sender with the given per-attempt HTTP timeout.
func newSender(timeout time.Duration) *sender {
	return &sender{
		client: &http.Client{Timeout: timeout},
	}
}

// post delivers payload to targetURL as application/json and reports the
// attempt outcome. The payload is relayed byte-for-byte.
func (s *sender) post(ctx context.Context, targetURL string, payload []byte) Attempt {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(payload))
	if err != nil {
		return Attempt{Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Hookgate/1.0")

	resp, err := s.client.Do(req) //nolint:gosec // G704: targetURL is the tenant's configured destination
	if err != nil {
		return Attempt{Err: err}
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody)) //nolint:errcheck // best effort

	return Attempt{StatusCode: resp.StatusCode}
}
