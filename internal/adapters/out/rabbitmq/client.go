// Package rabbitmq publishes notification work to the platform's message
// broker. The scheduler never talks to FCM or SMTP itself: it enqueues
// push and email jobs on durable queues and the downstream dispatcher does
// the actual delivery.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// PushQueue carries push notification jobs for the dispatcher.
	PushQueue = "notifications.push"

	// EmailQueue carries email jobs for the dispatcher.
	EmailQueue = "notifications.email"
)

// Config holds broker connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string // default "/"
}

// Client wraps one AMQP connection and channel with publisher confirms
// enabled. Publish is serialized with a mutex because confirms arrive on a
// single channel-scoped stream.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// Dial connects to the broker and opens a confirmed channel.
func Dial(cfg Config) (*Client, error) {
	if cfg.VHost == "" {
		cfg.VHost = "/"
	}
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

// DeclareQueues declares the durable queues the scheduler publishes to.
// Declaration is idempotent, so both the scheduler and the dispatcher may
// run it.
func (c *Client) DeclareQueues() error {
	if c == nil || c.ch == nil {
		return errors.New("nil channel")
	}
	if _, err := c.ch.QueueDeclare(PushQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(EmailQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return nil
}

// Ping reports whether the underlying connection is still open.
func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish sends one persistent JSON message to the given queue and waits
// for the broker's ack so a lost message surfaces as an error at the call
// site.
func (c *Client) Publish(ctx context.Context, queue string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.ch.PublishWithContext(
		ctx,
		"", // default exchange routes by queue name
		queue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}
