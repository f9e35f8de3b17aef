// Package notification provides the value objects the scheduler hands to
// the notification collaborator: push targets and order event kinds. The
// delivery mechanics behind them (FCM, SMTP) live outside this core.
package notification

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Event identifies the kind of order notification being sent. The values
// travel on the wire to the downstream dispatcher, so they are stable
// strings rather than iota constants.
type Event string

const (
	// EventNoDriverAvailable tells the shop owner and customer that the
	// driver search timed out without finding a partner.
	EventNoDriverAvailable Event = "NO_DRIVER_AVAILABLE"

	// EventPendingReminder nags the shop owner about an order still
	// waiting for acceptance. Carries a reminder sequence number.
	EventPendingReminder Event = "PENDING_ORDER_REMINDER"

	// EventAssignedAfterRetry informs operators that an order was finally
	// assigned after one or more failed attempts.
	EventAssignedAfterRetry Event = "ASSIGNED_AFTER_RETRY"
)

// Validate checks if the Event is one of the defined kinds.
func (e Event) Validate() error {
	switch e {
	case EventNoDriverAvailable, EventPendingReminder, EventAssignedAfterRetry:
		return nil
	default:
		return errs.NewValueIsInvalidError("event")
	}
}

// Target is one registered device of a user: where a single push
// notification can be delivered. A user may have zero or many targets.
type Target struct {
	UserID     kernel.UUID
	Token      string
	DeviceType string
}

// Validate checks the target has an owner and a token.
func (t Target) Validate() error {
	if err := t.UserID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	if t.Token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	return nil
}
