package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RemindPendingOrdersCommandHandler runs one reminder tick. Every order
// still in the Pending state earns the next reminder number, and each of
// the shop owner's registered devices gets a push carrying that number. An
// order with no reachable devices still consumes a number, so the count
// reflects how long the order has been ignored rather than how many pushes
// went out.
//
// After the sweep the handler reconciles tracked state: orders that are
// gone or no longer pending are dropped from the tracker so reminders stop
// as soon as the owner acts.
type RemindPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	tracker    *services.ReminderTracker
	directory  ports.RecipientDirectory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRemindPendingOrdersCommandHandler creates a handler for reminder
// ticks.
func NewRemindPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	tracker *services.ReminderTracker,
	directory ports.RecipientDirectory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RemindPendingOrdersCommandHandler {
	return RemindPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		directory:  directory,
		notifier:   notifier,
		logger:     logger.With("component", "pending_reminder"),
	}
}

// Handle processes one reminder tick: nags shop owners about every pending
// order, then clears tracking for orders that left the pending state.
func (h RemindPendingOrdersCommandHandler) Handle(ctx context.Context, command RemindPendingOrdersCommand) error {
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

	pending, err := ordersRepo.GetAllPending(ctx)
	if err != nil {
		return err
	}

	if len(pending) > 0 {
		h.logger.InfoContext(ctx, "Sending reminders for pending orders", "count", len(pending))
	}

	now := time.Now().UTC()
	for _, o := range pending {
		h.remind(ctx, o, now)
	}

	h.reconcile(ctx, ordersRepo)

	return uow.Commit(ctx)
}

// remind assigns the order its next reminder number and pushes it to every
// active device of the shop owner. Each device is tried independently; a
// failed push never blocks the others.
func (h RemindPendingOrdersCommandHandler) remind(ctx context.Context, o *order.Order, now time.Time) {
	sequence := h.tracker.Next(o.ID(), now)

	targets, err := h.directory.FindActiveTargets(ctx, o.ShopOwnerID())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to resolve shop owner devices",
			"order", o.OrderNumber(), "error", err)
		return
	}

	if len(targets) == 0 {
		h.logger.WarnContext(ctx, "No active devices for shop owner",
			"order", o.OrderNumber(), "reminder", sequence)
		return
	}

	for _, target := range targets {
		pushErr := h.notifier.PushOrderEvent(ctx, o.OrderNumber(), notification.EventPendingReminder, sequence, target)
		if pushErr != nil {
			h.logger.ErrorContext(ctx, "Failed to send pending reminder",
				"order", o.OrderNumber(), "reminder", sequence, "error", pushErr)
		}
	}
}

// reconcile drops tracker state for orders that no longer need reminders:
// accepted, rejected, cancelled, or deleted outright.
func (h RemindPendingOrdersCommandHandler) reconcile(ctx context.Context, ordersRepo ports.OrderRepository) {
	for _, id := range h.tracker.Tracked() {
		o, err := ordersRepo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				h.tracker.Clear(id)
				continue
			}
			h.logger.ErrorContext(ctx, "Failed to reconcile reminder tracking", "orderId", id, "error", err)
			continue
		}

		if o.Status() != order.Pending {
			h.tracker.Clear(id)
		}
	}
}
