// Package redis provides a Redis-backed vault client.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/hookgate/vault"
)

// keyPrefix namespaces secret keys in a shared keyspace.
const keyPrefix = "hookgate:secret:"

// compile-time interface check
var _ vault.Client = (*Client)(nil)

// Client implements vault.Client on top of Redis string keys.
type Client struct {
	rdb goredis.UniversalClient
}

// New creates a Redis vault client from an existing Redis connection.
func New(rdb goredis.UniversalClient) *Client {
	return &Client{rdb: rdb}
}

// GetSecret returns the value stored under the named secret key.
// Secret values are never logged here or by callers.
func (c *Client) GetSecret(ctx context.Context, name string) (string, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", vault.ErrSecretNotFound
		}
		return "", fmt.Errorf("vault/redis: get %s: %w", name, err)
	}
	return val, nil
}

// Ping checks Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
