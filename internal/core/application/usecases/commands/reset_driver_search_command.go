package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResetDriverSearchCommandIsNotConstructed = errors.New(
	"ResetDriverSearchCommand must be created via NewResetDriverSearchCommand constructor",
)

// ResetDriverSearchCommand restarts the driver search for an order whose
// previous search timed out. Backs the operator-facing "try again" button:
// the order is forced back to awaiting-driver status and the search budget
// starts over.
type ResetDriverSearchCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewResetDriverSearchCommand creates a command to restart the driver
// search for the given order.
func NewResetDriverSearchCommand(orderID kernel.UUID) (ResetDriverSearchCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ResetDriverSearchCommand{}, err
	}

	return ResetDriverSearchCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's identifier.
func (c *ResetDriverSearchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrResetDriverSearchCommandIsNotConstructed if validation fails.
func (c *ResetDriverSearchCommand) Validate() error {
	return c.guard.Validate(
		ErrResetDriverSearchCommandIsNotConstructed,
	)
}
