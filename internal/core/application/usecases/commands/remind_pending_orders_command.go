package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRemindPendingOrdersCommandIsNotConstructed = errors.New(
	"RemindPendingOrdersCommand must be created via NewRemindPendingOrdersCommand constructor",
)

// RemindPendingOrdersCommand triggers one tick of the pending-order
// reminder loop: shop owners get a push for every order still waiting for
// their acceptance, with an increasing reminder number, until the order
// leaves the pending state.
type RemindPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewRemindPendingOrdersCommand creates a new command to trigger a reminder
// tick.
func NewRemindPendingOrdersCommand() RemindPendingOrdersCommand {
	return RemindPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemindPendingOrdersCommandIsNotConstructed if validation fails.
func (c *RemindPendingOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrRemindPendingOrdersCommandIsNotConstructed,
	)
}
