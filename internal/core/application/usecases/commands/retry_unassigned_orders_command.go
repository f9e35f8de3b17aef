package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRetryUnassignedOrdersCommandIsNotConstructed = errors.New(
	"RetryUnassignedOrdersCommand must be created via NewRetryUnassignedOrdersCommand constructor",
)

// RetryUnassignedOrdersCommand triggers one tick of the unassigned-order
// retry loop: the second line of defense that catches home-delivery orders
// still without an accepted assignment and escalates to humans when the
// retry budget runs out.
type RetryUnassignedOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewRetryUnassignedOrdersCommand creates a new command to trigger a retry
// tick.
func NewRetryUnassignedOrdersCommand() RetryUnassignedOrdersCommand {
	return RetryUnassignedOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRetryUnassignedOrdersCommandIsNotConstructed if validation fails.
func (c *RetryUnassignedOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrRetryUnassignedOrdersCommandIsNotConstructed,
	)
}
