package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartDriverSearchCommandIsNotConstructed = errors.New(
	"StartDriverSearchCommand must be created via NewStartDriverSearchCommand constructor",
)

// StartDriverSearchCommand begins the driver search for one order. Called
// by the shop-owner flow when an order is marked ready for pickup; the
// scheduled search loop then drives the search forward every tick.
//
// Starting a search that is already running resets it rather than adding to
// it: the attempt counter and the search clock both go back to zero.
type StartDriverSearchCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewStartDriverSearchCommand creates a command to start the driver search
// for the given order.
func NewStartDriverSearchCommand(orderID kernel.UUID) (StartDriverSearchCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartDriverSearchCommand{}, err
	}

	return StartDriverSearchCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's identifier.
func (c *StartDriverSearchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartDriverSearchCommandIsNotConstructed if validation fails.
func (c *StartDriverSearchCommand) Validate() error {
	return c.guard.Validate(
		ErrStartDriverSearchCommandIsNotConstructed,
	)
}
