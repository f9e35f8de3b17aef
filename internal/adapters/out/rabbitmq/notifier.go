package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/notification"
)

// pushMessage is the wire format for one push notification job.
type pushMessage struct {
	UserID      string    `json:"user_id"`
	Token       string    `json:"token"`
	DeviceType  string    `json:"device_type,omitempty"`
	OrderNumber string    `json:"order_number"`
	Event       string    `json:"event"`
	Sequence    int       `json:"sequence,omitempty"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// emailMessage is the wire format for one email job.
type emailMessage struct {
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Notifier implements the notification port by enqueueing jobs on the
// broker. A returned nil means the broker acknowledged the message, not
// that the push or email reached the recipient.
type Notifier struct {
	client *Client
}

// NewNotifier creates a notifier publishing through the given client.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// PushOrderEvent enqueues one push notification job for one target device.
func (n *Notifier) PushOrderEvent(
	ctx context.Context,
	orderNumber string,
	event notification.Event,
	sequence int,
	target notification.Target,
) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(pushMessage{
		UserID:      target.UserID.String(),
		Token:       target.Token,
		DeviceType:  target.DeviceType,
		OrderNumber: orderNumber,
		Event:       string(event),
		Sequence:    sequence,
		EnqueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, PushQueue, body)
}

// SendEmail enqueues one email job.
func (n *Notifier) SendEmail(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailMessage{
		To:         to,
		Subject:    subject,
		Body:       body,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, EmailQueue, payload)
}
