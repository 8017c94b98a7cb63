// Package rabbit provides a RabbitMQ-backed durable queue.
package rabbit

import (
	"context"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/xraph/hookgate/queue"
)

// compile-time interface check
var _ queue.Queue = (*Queue)(nil)

// Queue implements queue.Queue by publishing persistent messages to a
// durable RabbitMQ queue via the default exchange.
type Queue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	name string
}

// Dial connects to the broker at uri and declares the named durable queue.
func Dial(uri, name string) (*Queue, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("queue/rabbit: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("queue/rabbit: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		ch.Close()   //nolint:errcheck // already failing
		conn.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("queue/rabbit: declare %s: %w", name, err)
	}

	return &Queue{conn: conn, ch: ch, name: name}, nil
}

// Send publishes msg to the queue with persistent delivery mode.
// The amqp library does not take a context; cancellation is checked before
// publishing.
func (q *Queue) Send(ctx context.Context, msg string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := q.ch.Publish(
		"",     // default exchange
		q.name, // routing key = queue name
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         []byte(msg),
		},
	)
	if err != nil {
		return fmt.Errorf("queue/rabbit: publish to %s: %w", q.name, err)
	}
	return nil
}

// Close closes the channel and connection.
func (q *Queue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close() //nolint:errcheck // already failing
		return fmt.Errorf("queue/rabbit: close channel: %w", err)
	}
	return q.conn.Close()
}
