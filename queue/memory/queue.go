// Package memory provides an in-memory queue implementation for unit testing.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/hookgate/queue"
)

// compile-time interface check
var _ queue.Queue = (*Queue)(nil)

// Queue is an in-memory implementation of queue.Queue that captures every
// sent message.
type Queue struct {
	mu       sync.Mutex
	messages []string

	// sendErr, when set, is returned by every Send call. Used by tests to
	// simulate a failing queue backend.
	sendErr error
}

// New creates an empty in-memory queue.
func New() *Queue {
	return &Queue{}
}

// Send captures msg.
func (q *Queue) Send(_ context.Context, msg string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sendErr != nil {
		return q.sendErr
	}
	q.messages = append(q.messages, msg)
	return nil
}

// Messages returns a copy of all captured messages in send order.
func (q *Queue) Messages() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.messages))
	copy(out, q.messages)
	return out
}

// FailWith makes every subsequent Send return err. Pass nil to restore
// normal behavior.
func (q *Queue) FailWith(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sendErr = err
}

// Close is a no-op for the in-memory queue.
func (q *Queue) Close() error { return nil }
