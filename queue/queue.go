// Package queue defines the durable queue capability used by the dead-letter
// sink.
//
// The relay only writes to the queue: it treats it as a named channel
// dedicated to failed webhook deliveries and never reads it back. Backends
// live in sub-packages (redis, rabbit, memory).
package queue

import "context"

// Queue is the narrow send-only capability the relay depends on.
type Queue interface {
	// Send submits an opaque message to the queue. Durability and eventual
	// consumption are the queue's responsibility once Send returns nil.
	Send(ctx context.Context, msg string) error

	// Close releases the underlying connection.
	Close() error
}
