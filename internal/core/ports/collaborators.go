package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// ErrAssignmentFailed is returned by AssignmentService.AutoAssign when no
// partner could be bound to the order this attempt: no candidate accepted,
// or another path won the race for the order's single active assignment.
// The loops treat it as "no progress this tick", never as fatal.
var ErrAssignmentFailed = errors.New("assignment failed")

// AssignmentService attempts to bind an order to an available delivery
// partner. How the partner is chosen among candidates is the service's
// concern, not the scheduler's.
//
// AutoAssign must be safe to call repeatedly, and concurrently, for the
// same order: two scheduler loops act on overlapping order sets, so the
// implementation has to guarantee at most one active assignment per order
// (the postgres adapter does this with a unique constraint).
type AssignmentService interface {
	// AutoAssign tries one assignment for the order. requesterID
	// identifies the user on whose behalf the assignment is made; nil
	// means the system scheduler itself. Returns the created assignment,
	// or an error unwrapping to ErrAssignmentFailed when no binding
	// happened.
	AutoAssign(ctx context.Context, orderID kernel.UUID, requesterID *kernel.UUID) (*assignment.Assignment, error)
}

// Notifier delivers notifications to humans. All sends are best-effort from
// the scheduler's perspective: callers log failures and move on, and no
// notification failure may abort a tick.
type Notifier interface {
	// PushOrderEvent sends one push notification about an order to one
	// target device. sequence carries the reminder number for
	// EventPendingReminder and is zero otherwise.
	PushOrderEvent(
		ctx context.Context,
		orderNumber string,
		event notification.Event,
		sequence int,
		target notification.Target,
	) error

	// SendEmail sends one plain email, used for escalation alerts to the
	// platform admin and shop owners.
	SendEmail(ctx context.Context, to, subject, body string) error
}

// RecipientDirectory resolves a user to their currently registered
// notification targets. A user may have zero targets (no devices) or many.
type RecipientDirectory interface {
	FindActiveTargets(ctx context.Context, userID kernel.UUID) ([]notification.Target, error)
}

// EmailDirectory resolves a user to their contact email address. Used for
// escalation emails to shop owners.
type EmailDirectory interface {
	FindEmail(ctx context.Context, userID kernel.UUID) (string, error)
}
