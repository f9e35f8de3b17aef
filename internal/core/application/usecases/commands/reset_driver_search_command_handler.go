package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ResetDriverSearchCommandHandler restarts a timed-out driver search:
// status forced back to awaiting-driver, search clock and attempt counter
// reset.
type ResetDriverSearchCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResetDriverSearchCommandHandler creates a handler for restarting
// driver searches.
func NewResetDriverSearchCommandHandler(uowFactory OrderUoWFactory) ResetDriverSearchCommandHandler {
	return ResetDriverSearchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, resets its search, and persists the change.
// Returns ErrOrderNotFound when the order does not exist.
func (h ResetDriverSearchCommandHandler) Handle(ctx context.Context, command ResetDriverSearchCommand) error {
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

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = o.ResetSearch(time.Now().UTC()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
