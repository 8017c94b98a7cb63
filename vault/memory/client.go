// Package memory provides an in-memory vault client for unit testing and
// static single-node deployments.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/hookgate/vault"
)

// compile-time interface check
var _ vault.Client = (*Client)(nil)

// Client is an in-memory implementation of vault.Client.
type Client struct {
	mu      sync.RWMutex
	secrets map[string]string

	// getErr, when set, is returned by every GetSecret call. Used by tests
	// to simulate a failing secret store.
	getErr error
}

// New creates an empty in-memory vault.
func New() *Client {
	return &Client{secrets: make(map[string]string)}
}

// NewWithSecrets creates an in-memory vault seeded with the given name→value
// pairs.
func NewWithSecrets(secrets map[string]string) *Client {
	c := New()
	for name, value := range secrets {
		c.secrets[name] = value
	}
	return c
}

// GetSecret returns the value stored under name.
func (c *Client) GetSecret(_ context.Context, name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	val, ok := c.secrets[name]
	if !ok {
		return "", vault.ErrSecretNotFound
	}
	return val, nil
}

// SetSecret stores a secret value under name.
func (c *Client) SetSecret(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secrets[name] = value
}

// DeleteSecret removes the named secret.
func (c *Client) DeleteSecret(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.secrets, name)
}

// FailWith makes every subsequent GetSecret return err. Pass nil to restore
// normal behavior.
func (c *Client) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getErr = err
}

// Close is a no-op for the in-memory vault.
func (c *Client) Close() error { return nil }
