// Package redis provides a Redis list-backed durable queue.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/hookgate/queue"
)

// keyPrefix namespaces queue keys in a shared keyspace.
const keyPrefix = "hookgate:queue:"

// compile-time interface check
var _ queue.Queue = (*Queue)(nil)

// Queue implements queue.Queue as a Redis list. Messages are pushed with
// LPUSH; consumers drain with RPOP/BRPOP for FIFO ordering.
type Queue struct {
	rdb goredis.UniversalClient
	key string
}

// New creates a Redis queue writing to the named list.
func New(rdb goredis.UniversalClient, name string) *Queue {
	return &Queue{
		rdb: rdb,
		key: keyPrefix + name,
	}
}

// Send pushes msg onto the list.
func (q *Queue) Send(ctx context.Context, msg string) error {
	if err := q.rdb.LPush(ctx, q.key, msg).Err(); err != nil {
		return fmt.Errorf("queue/redis: lpush %s: %w", q.key, err)
	}
	return nil
}

// Len returns the number of messages currently queued.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	n, err := q.rdb.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("queue/redis: llen %s: %w", q.key, err)
	}
	return n, nil
}

// Ping checks Redis connectivity.
func (q *Queue) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (q *Queue) Close() error {
	return q.rdb.Close()
}
