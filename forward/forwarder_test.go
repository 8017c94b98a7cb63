package forward

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestForwarder returns a Forwarder whose backoff sleeps are recorded
// instead of slept.
func newTestForwarder(t *testing.T) (*Forwarder, *[]time.Duration) {
	t.Helper()

	f := New(Config{
		RequestTimeout: 5 * time.Second,
		MaxRetries:     3,
		BackoffBase:    2 * time.Second,
	}, slog.Default())

	var slept []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return f, &slept
}

func TestForwardSuccessFirstAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f, slept := newTestForwarder(t)
	out := f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if !out.Success || out.StatusCode != 200 {
		t.Fatalf("expected success 200, got %+v", out)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected no backoff, got %v", *slept)
	}
}

func TestForwardRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f, slept := newTestForwarder(t)
	out := f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if !out.Success || out.StatusCode != 200 {
		t.Fatalf("expected success on 4th attempt, got %+v", out)
	}
	if atomic.LoadInt32(&calls) != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}

	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected backoffs %v, got %v", want, *slept)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("backoff %d = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestForwardExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, _ := newTestForwarder(t)
	out := f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if out.Success {
		t.Fatal("expected failure after exhaustion")
	}
	if out.StatusCode != 503 {
		t.Fatalf("expected last status 503, got %d", out.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
	if out.Error == "" {
		t.Fatal("expected error detail")
	}
}

func TestForwardPermanentRejectionNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f, slept := newTestForwarder(t)
	out := f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if out.Success {
		t.Fatal("expected failure")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("expected zero backoff delay, got %v", *slept)
	}
	if out.StatusCode != 404 {
		t.Fatalf("expected status 404, got %d", out.StatusCode)
	}
}

func TestForwardNetworkFailure(t *testing.T) {
	// A closed server yields a connection error on every attempt.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	f, slept := newTestForwarder(t)
	out := f.Forward(context.Background(), url, []byte(`{"a":1}`))

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.StatusCode != 0 {
		t.Fatalf("expected no status code, got %d", out.StatusCode)
	}
	if len(*slept) != 3 {
		t.Fatalf("expected 3 backoffs before exhaustion, got %d", len(*slept))
	}
}

func TestForwardTimeoutReportedDistinctly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels r.Context(); otherwise srv.Close blocks forever.
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := New(Config{
		RequestTimeout: 50 * time.Millisecond,
		MaxRetries:     1,
		BackoffBase:    time.Millisecond,
	}, slog.Default())
	f.sleep = func(context.Context, time.Duration) error { return nil }

	out := f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Error != "Timeout after retries" {
		t.Fatalf("expected timeout detail, got %q", out.Error)
	}
}

func TestForwardContentType(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f, _ := newTestForwarder(t)
	f.Forward(context.Background(), srv.URL, []byte(`{"a":1}`))

	if !strings.HasPrefix(contentType, "application/json") {
		t.Fatalf("expected application/json, got %q", contentType)
	}
}

func TestForwardCanceledCallerStopsRetrying(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())

	f, _ := newTestForwarder(t)
	f.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	out := f.Forward(ctx, srv.URL, []byte(`{"a":1}`))

	if out.Success {
		t.Fatal("expected failure")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 attempt before cancellation, got %d", got)
	}
}
