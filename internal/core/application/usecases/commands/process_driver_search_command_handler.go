package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SearchPolicy bounds how long the driver search loop keeps trying before
// declaring a timeout. Both limits are evaluated per order every tick;
// whichever trips first wins.
type SearchPolicy struct {
	// Timeout is the maximum elapsed time since the search started.
	Timeout time.Duration

	// MaxAttempts is the maximum number of assignment attempts.
	MaxAttempts int
}

// DefaultSearchPolicy mirrors the production configuration: a three minute
// window at one attempt per 30-second tick.
func DefaultSearchPolicy() SearchPolicy {
	return SearchPolicy{
		Timeout:     3 * time.Minute,
		MaxAttempts: 6,
	}
}

// ProcessDriverSearchCommandHandler runs one driver search tick. For each
// order with an active search it checks the retry budget, attempts an
// assignment when partners are available, and handles timeouts by reverting
// the order to Ready and notifying the shop owner and customer.
//
// Failures are isolated per order: a broken order, a lost assignment race,
// or a dead notification channel is logged and the batch continues. Only a
// failure of the eligible-orders query itself ends the tick early.
type ProcessDriverSearchCommandHandler struct {
	uowFactory SearchUoWFactory
	assigner   ports.AssignmentService
	notifier   ports.Notifier
	directory  ports.RecipientDirectory
	policy     SearchPolicy
	logger     *slog.Logger
}

// NewProcessDriverSearchCommandHandler creates a handler for driver search
// ticks.
func NewProcessDriverSearchCommandHandler(
	uowFactory SearchUoWFactory,
	assigner ports.AssignmentService,
	notifier ports.Notifier,
	directory ports.RecipientDirectory,
	policy SearchPolicy,
	logger *slog.Logger,
) ProcessDriverSearchCommandHandler {
	return ProcessDriverSearchCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		notifier:   notifier,
		directory:  directory,
		policy:     policy,
		logger:     logger.With("component", "driver_search"),
	}
}

// Handle processes one driver search tick. Retrieves all orders with an
// active search and processes each independently within a single
// transaction. The per-order outcome is one of: search completed
// (assignment succeeded), attempt recorded (no partners or race lost), or
// timeout declared (budget exhausted). Timed-out orders are reverted inside
// the transaction; their no-driver notifications go out after it commits.
func (h ProcessDriverSearchCommandHandler) Handle(ctx context.Context, command ProcessDriverSearchCommand) error {
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
	partnersRepo := uow.PartnerRepository()

	searching, err := ordersRepo.GetAllSearching(ctx)
	if err != nil {
		return err
	}
	if len(searching) == 0 {
		return uow.Commit(ctx)
	}

	h.logger.InfoContext(ctx, "Processing orders searching for a driver", "count", len(searching))

	now := time.Now().UTC()
	var timedOut []*order.Order
	for _, o := range searching {
		expired, orderErr := h.processOrder(ctx, ordersRepo, partnersRepo, o, now)
		if orderErr != nil {
			h.logger.ErrorContext(ctx, "Driver search failed for order",
				"order", o.OrderNumber(), "error", orderErr)
			continue
		}
		if expired {
			timedOut = append(timedOut, o)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, o := range timedOut {
		h.notifyNoDriver(ctx, o, o.ShopOwnerID())
		h.notifyNoDriver(ctx, o, o.CustomerID())
	}
	return nil
}

// processOrder handles a single searching order and reports whether its
// search timed out during this tick.
func (h ProcessDriverSearchCommandHandler) processOrder(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	partnersRepo ports.PartnerRepository,
	o *order.Order,
	now time.Time,
) (bool, error) {
	if o.SearchExpired(now, h.policy.Timeout, h.policy.MaxAttempts) {
		return true, h.handleTimeout(ctx, ordersRepo, o)
	}

	partners, err := partnersRepo.GetAllAvailable(ctx)
	if err != nil {
		return false, err
	}

	if len(partners) == 0 {
		h.logger.InfoContext(ctx, "No partners available",
			"order", o.OrderNumber(),
			"attempt", o.SearchAttempts()+1,
			"max_attempts", h.policy.MaxAttempts)
		return false, h.recordAttempt(ctx, ordersRepo, o)
	}

	if _, err = h.assigner.AutoAssign(ctx, o.ID(), nil); err != nil {
		h.logger.WarnContext(ctx, "Assignment attempt failed",
			"order", o.OrderNumber(), "error", err)
		return false, h.recordAttempt(ctx, ordersRepo, o)
	}

	if err = o.CompleteSearch(); err != nil {
		return false, err
	}
	if err = ordersRepo.Update(ctx, o); err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "Order assigned to a driver",
		"order", o.OrderNumber(), "attempts", o.SearchAttempts())
	return false, nil
}

func (h ProcessDriverSearchCommandHandler) recordAttempt(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	o *order.Order,
) error {
	if err := o.RecordSearchAttempt(); err != nil {
		return err
	}
	return ordersRepo.Update(ctx, o)
}

// handleTimeout declares the search over: the order reverts to Ready so a
// human can retry. The no-driver pushes to the shop owner and the customer
// are sent by Handle once the revert is committed.
func (h ProcessDriverSearchCommandHandler) handleTimeout(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	o *order.Order,
) error {
	if err := o.FailSearch(); err != nil {
		return err
	}
	if err := ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "Driver search timed out",
		"order", o.OrderNumber(), "attempts", o.SearchAttempts())
	return nil
}

// notifyNoDriver fans the timeout push out to the recipient's devices,
// stopping at the first device that takes it.
func (h ProcessDriverSearchCommandHandler) notifyNoDriver(
	ctx context.Context,
	o *order.Order,
	recipient kernel.UUID,
) {
	targets, err := h.directory.FindActiveTargets(ctx, recipient)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to resolve notification targets",
			"order", o.OrderNumber(), "user", recipient.String(), "error", err)
		return
	}

	for _, target := range targets {
		err = h.notifier.PushOrderEvent(ctx, o.OrderNumber(), notification.EventNoDriverAvailable, 0, target)
		if err == nil {
			return
		}
		h.logger.WarnContext(ctx, "Failed to push no-driver notification",
			"order", o.OrderNumber(), "device", target.DeviceType, "error", err)
	}
}
