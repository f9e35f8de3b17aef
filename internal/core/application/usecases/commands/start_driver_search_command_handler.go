package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the target order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// StartDriverSearchCommandHandler starts the driver search for a single
// order: search clock set to now, attempt counter reset, completion flag
// cleared.
//
// Example:
//
//	cmd, _ := NewStartDriverSearchCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("could not start driver search: %v", err)
//	}
type StartDriverSearchCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartDriverSearchCommandHandler creates a handler for starting driver
// searches.
func NewStartDriverSearchCommandHandler(uowFactory OrderUoWFactory) StartDriverSearchCommandHandler {
	return StartDriverSearchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, starts its search, and persists the change.
// Returns ErrOrderNotFound when the order does not exist, or a status
// validation error when the order is not awaiting a driver.
func (h StartDriverSearchCommandHandler) Handle(ctx context.Context, command StartDriverSearchCommand) error {
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

	if err = o.StartSearch(time.Now().UTC()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
