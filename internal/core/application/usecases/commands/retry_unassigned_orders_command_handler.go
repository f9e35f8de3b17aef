package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RetryPolicy bounds the unassigned-order retry loop. Unlike the search
// policy, reaching MaxAttempts does not stop the loop; it only triggers a
// warning. Only MaxAge ends the retrying, with a critical alert.
type RetryPolicy struct {
	// MaxAttempts is the failure count at which a warning alert goes out.
	MaxAttempts int

	// MaxAge is how long the loop keeps trying before giving up with a
	// critical alert. Measured from the first time the loop saw the
	// order.
	MaxAge time.Duration

	// PurgeGrace extends MaxAge for the tracker cleanup, so entries are
	// only purged well after they could matter.
	PurgeGrace time.Duration
}

// DefaultRetryPolicy mirrors the production configuration.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MaxAge:      10 * time.Minute,
		PurgeGrace:  5 * time.Minute,
	}
}

// RetryUnassignedOrdersCommandHandler runs one tick of the unassigned-order
// retry loop. It re-discovers home-delivery orders that are ready for
// pickup but have no assignment on the success track, independent of the
// driver search loop's own bookkeeping, and attempts assignment with
// escalating alerts:
//
//   - warning email to admin and shop owner once failures reach
//     MaxAttempts (the loop keeps trying)
//   - critical email to admin and shop owner at MaxAge, then gives up so a
//     human takes over
//
// The tracker state is process-local; a restart restarts the escalation
// clock, which errs on the side of retrying longer rather than alerting
// spuriously.
type RetryUnassignedOrdersCommandHandler struct {
	uowFactory RetryUoWFactory
	tracker    *services.RetryTracker
	assigner   ports.AssignmentService
	notifier   ports.Notifier
	emails     ports.EmailDirectory
	adminEmail string
	policy     RetryPolicy
	logger     *slog.Logger
}

// NewRetryUnassignedOrdersCommandHandler creates a handler for retry ticks.
func NewRetryUnassignedOrdersCommandHandler(
	uowFactory RetryUoWFactory,
	tracker *services.RetryTracker,
	assigner ports.AssignmentService,
	notifier ports.Notifier,
	emails ports.EmailDirectory,
	adminEmail string,
	policy RetryPolicy,
	logger *slog.Logger,
) RetryUnassignedOrdersCommandHandler {
	return RetryUnassignedOrdersCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		assigner:   assigner,
		notifier:   notifier,
		emails:     emails,
		adminEmail: adminEmail,
		policy:     policy,
		logger:     logger.With("component", "unassigned_retry"),
	}
}

// Handle processes one retry tick. Each candidate order is processed
// independently; only a failure of the candidate query ends the tick early.
func (h RetryUnassignedOrdersCommandHandler) Handle(ctx context.Context, command RetryUnassignedOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	assignmentsRepo := uow.AssignmentRepository()

	ready, err := ordersRepo.GetAllReadyForHomeDelivery(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	processed := 0
	for _, o := range ready {
		unassigned, candErr := h.isUnassigned(ctx, assignmentsRepo, o)
		if candErr != nil {
			h.logger.ErrorContext(ctx, "Failed to check assignments for order",
				"order", o.OrderNumber(), "error", candErr)
			continue
		}
		if !unassigned {
			continue
		}

		processed++
		if orderErr := h.processOrder(ctx, o, now); orderErr != nil {
			h.logger.ErrorContext(ctx, "Retry failed for order",
				"order", o.OrderNumber(), "error", orderErr)
		}
	}

	if processed > 0 {
		h.logger.InfoContext(ctx, "Processed unassigned orders", "count", processed)
	}

	// Drop entries for orders that left the candidate set without being
	// resolved through this loop.
	if purged := h.tracker.Purge(now.Add(-(h.policy.MaxAge + h.policy.PurgeGrace))); purged > 0 {
		h.logger.InfoContext(ctx, "Purged stale retry tracking entries", "count", purged)
	}

	return uow.Commit(ctx)
}

// isUnassigned reports whether none of the order's assignments is on the
// success track (accepted, picked up, or delivered).
func (h RetryUnassignedOrdersCommandHandler) isUnassigned(
	ctx context.Context,
	assignmentsRepo ports.AssignmentRepository,
	o *order.Order,
) (bool, error) {
	assignments, err := assignmentsRepo.GetByOrder(ctx, o.ID())
	if err != nil {
		return false, err
	}

	for _, a := range assignments {
		if a.Status().IsSuccessTrack() {
			return false, nil
		}
	}
	return true, nil
}

func (h RetryUnassignedOrdersCommandHandler) processOrder(
	ctx context.Context,
	o *order.Order,
	now time.Time,
) error {
	status := h.tracker.Observe(o.ID(), now)

	h.logger.InfoContext(ctx, "Processing unassigned order",
		"order", o.OrderNumber(),
		"attempt", status.Attempts+1,
		"age", status.Age.Round(time.Second).String())

	if status.Age >= h.policy.MaxAge {
		h.logger.WarnContext(ctx, "Order unassigned past max age, giving up",
			"order", o.OrderNumber(), "age", status.Age.Round(time.Second).String())
		h.sendCriticalAlert(ctx, o, status)
		h.tracker.Clear(o.ID())
		return nil
	}

	if _, err := h.assigner.AutoAssign(ctx, o.ID(), nil); err == nil {
		h.logger.InfoContext(ctx, "Order assigned after retry",
			"order", o.OrderNumber(), "attempts", status.Attempts+1)
		if status.Attempts > 0 {
			h.sendAssignedAfterRetryNotice(ctx, o, status.Attempts+1)
		}
		h.tracker.Clear(o.ID())
		return nil
	}

	attempts := h.tracker.RecordFailure(o.ID(), now)
	h.logger.WarnContext(ctx, "Assignment retry failed",
		"order", o.OrderNumber(), "attempt", attempts, "max_attempts", h.policy.MaxAttempts)

	if attempts >= h.policy.MaxAttempts {
		h.sendWarningAlert(ctx, o, attempts)
	}
	return nil
}

func (h RetryUnassignedOrdersCommandHandler) sendWarningAlert(ctx context.Context, o *order.Order, attempts int) {
	subject := fmt.Sprintf("No delivery partners available for order %s", o.OrderNumber())
	body := fmt.Sprintf(
		"Order %s could not be assigned to a delivery partner after %d attempts.\n\n"+
			"The scheduler keeps retrying until the order is %s old. "+
			"Consider asking delivery partners to come online.\n",
		o.OrderNumber(), attempts, h.policy.MaxAge,
	)

	h.emailAdminAndOwner(ctx, o, subject, body)
}

func (h RetryUnassignedOrdersCommandHandler) sendCriticalAlert(
	ctx context.Context,
	o *order.Order,
	status services.RetryStatus,
) {
	firstAttempt := ""
	if status.FirstAttemptAt != nil {
		firstAttempt = status.FirstAttemptAt.Format(time.RFC3339)
	}

	subject := fmt.Sprintf("CRITICAL: order %s still unassigned after %s", o.OrderNumber(), h.policy.MaxAge)
	body := fmt.Sprintf(
		"Order %s has been waiting for delivery partner assignment for %s.\n\n"+
			"Order details:\n"+
			"- Order ID: %s\n"+
			"- Order number: %s\n"+
			"- Total attempts: %d\n"+
			"- First attempt: %s\n\n"+
			"Automatic retries have stopped. Assign a delivery partner manually.\n",
		o.OrderNumber(), status.Age.Round(time.Second),
		o.ID().String(), o.OrderNumber(), status.Attempts, firstAttempt,
	)

	h.emailAdminAndOwner(ctx, o, subject, body)
}

func (h RetryUnassignedOrdersCommandHandler) sendAssignedAfterRetryNotice(
	ctx context.Context,
	o *order.Order,
	attempts int,
) {
	subject := fmt.Sprintf("Order %s assigned after %d attempts", o.OrderNumber(), attempts)
	body := fmt.Sprintf(
		"Order %s was assigned to a delivery partner on attempt %d. No action needed.\n",
		o.OrderNumber(), attempts,
	)

	if err := h.notifier.SendEmail(ctx, h.adminEmail, subject, body); err != nil {
		h.logger.WarnContext(ctx, "Failed to send assigned-after-retry notice",
			"order", o.OrderNumber(), "error", err)
	}
}

// emailAdminAndOwner sends the alert to the platform admin and, when an
// address can be resolved, to the shop owner. Each send is independent and
// best-effort.
func (h RetryUnassignedOrdersCommandHandler) emailAdminAndOwner(
	ctx context.Context,
	o *order.Order,
	subject, body string,
) {
	if err := h.notifier.SendEmail(ctx, h.adminEmail, subject, body); err != nil {
		h.logger.ErrorContext(ctx, "Failed to email admin",
			"order", o.OrderNumber(), "error", err)
	}

	ownerEmail, err := h.emails.FindEmail(ctx, o.ShopOwnerID())
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to resolve shop owner email",
			"order", o.OrderNumber(), "error", err)
		return
	}
	if ownerEmail == "" {
		return
	}

	if err = h.notifier.SendEmail(ctx, ownerEmail, subject, body); err != nil {
		h.logger.ErrorContext(ctx, "Failed to email shop owner",
			"order", o.OrderNumber(), "error", err)
	}
}
