package hookgate

import "errors"

// Sentinel errors returned by Gateway operations.
var (
	// ErrNoVault is returned when a Gateway is created without a secret store.
	ErrNoVault = errors.New("hookgate: vault is required")

	// ErrNoQueue is returned when a Gateway is created without a dead-letter queue.
	ErrNoQueue = errors.New("hookgate: queue is required")

	// ErrMissingTenant is returned when a delivery request carries no tenant id.
	ErrMissingTenant = errors.New("hookgate: missing tenant id")

	// ErrEmptyPayload is returned when a delivery request carries an empty body.
	ErrEmptyPayload = errors.New("hookgate: empty payload")

	// ErrUnknownTenant is returned when no credentials exist for the tenant.
	ErrUnknownTenant = errors.New("hookgate: unknown tenant")

	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("hookgate: invalid signature")

	// ErrRateLimited is returned when a tenant exceeds its ingest rate budget.
	ErrRateLimited = errors.New("hookgate: rate limit exceeded")
)

// DeliveryError reports a forward that failed after the retry policy was
// exhausted. The payload has been handed to the dead-letter sink by the time
// this error is returned.
type DeliveryError struct {
	// Detail is the human-readable error from the final attempt.
	Detail string

	// StatusCode is the last observed destination status, or zero when the
	// final attempt failed at the network level.
	StatusCode int
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return "hookgate: delivery failed after retries: " + e.Detail
}
