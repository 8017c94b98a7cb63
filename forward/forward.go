// Package forward delivers webhook payloads over HTTP with a bounded
// retry/backoff policy around a single-attempt sender.
package forward

// Attempt holds the outcome of a single POST attempt.
type Attempt struct {
	// StatusCode is the HTTP response status, or zero when the attempt
	// failed before a response was received.
	StatusCode int

	// Err is the network-level failure, nil when a response came back.
	Err error
}

// Outcome is the final result of a forward call after the retry policy has
// run. Consumed exactly once by the caller.
type Outcome struct {
	// Success is true when an attempt returned a 2xx status.
	Success bool

	// StatusCode is the status of the successful attempt, or the last
	// observed status on failure. Zero when the final attempt failed at
	// the network level.
	StatusCode int

	// Error is a human-readable detail for failed outcomes.
	Error string
}
