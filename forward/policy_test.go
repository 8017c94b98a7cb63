package forward_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/hookgate/forward"
)

func TestPolicyRetryable(t *testing.T) {
	policy := forward.Policy{MaxRetries: 3, BackoffBase: 2 * time.Second}

	tests := []struct {
		name    string
		attempt forward.Attempt
		want    bool
	}{
		{"connection error → retry", forward.Attempt{Err: errors.New("connection refused")}, true},
		{"timeout error → retry", forward.Attempt{Err: context.DeadlineExceeded}, true},
		{"canceled caller → no retry", forward.Attempt{Err: context.Canceled}, false},
		{"408 Request Timeout → retry", forward.Attempt{StatusCode: 408}, true},
		{"500 Internal Server Error → retry", forward.Attempt{StatusCode: 500}, true},
		{"502 Bad Gateway → retry", forward.Attempt{StatusCode: 502}, true},
		{"503 Service Unavailable → retry", forward.Attempt{StatusCode: 503}, true},
		{"599 → retry", forward.Attempt{StatusCode: 599}, true},
		{"400 Bad Request → no retry", forward.Attempt{StatusCode: 400}, false},
		{"401 Unauthorized → no retry", forward.Attempt{StatusCode: 401}, false},
		{"404 Not Found → no retry", forward.Attempt{StatusCode: 404}, false},
		{"410 Gone → no retry", forward.Attempt{StatusCode: 410}, false},
		{"422 Unprocessable → no retry", forward.Attempt{StatusCode: 422}, false},
		{"301 redirect → no retry", forward.Attempt{StatusCode: 301}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Retryable(tt.attempt); got != tt.want {
				t.Errorf("Retryable(%+v) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestPolicyBackoff(t *testing.T) {
	policy := forward.Policy{MaxRetries: 3, BackoffBase: 2 * time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{0, 2 * time.Second}, // clamped to the first slot
	}

	for _, tt := range tests {
		if got := policy.Backoff(tt.attempt); got != tt.want {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestPolicyAttempts(t *testing.T) {
	policy := forward.Policy{MaxRetries: 3}
	if got := policy.Attempts(); got != 4 {
		t.Errorf("Attempts() = %d, want 4", got)
	}
}
