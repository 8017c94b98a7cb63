// Package vault defines the secret store capability used to resolve tenant
// credentials.
//
// The relay derives two secret names per tenant: "{tenantId}--WebhookSecret"
// and "{tenantId}--TargetUrl". Backends live in sub-packages (redis, memory)
// and only need to answer point lookups by name.
package vault

import (
	"context"
	"errors"
)

// ErrSecretNotFound is returned when the named secret does not exist.
var ErrSecretNotFound = errors.New("vault: secret not found")

// Client is the narrow secret store capability the relay depends on.
type Client interface {
	// GetSecret returns the value of the named secret, or ErrSecretNotFound.
	GetSecret(ctx context.Context, name string) (string, error)

	// Close releases the underlying connection.
	Close() error
}
