package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrProcessDriverSearchCommandIsNotConstructed = errors.New(
	"ProcessDriverSearchCommand must be created via NewProcessDriverSearchCommand constructor",
)

// ProcessDriverSearchCommand triggers one tick of the driver search loop:
// every order with an active driver search gets either an assignment
// attempt, an attempt-counter increment, or the timeout treatment.
//
// Example:
//
//	cmd := NewProcessDriverSearchCommand()
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("driver search tick failed: %v", err)
//	}
type ProcessDriverSearchCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessDriverSearchCommand creates a new command to trigger a driver
// search tick. This is a parameterless command; the eligible order set is
// read from the order store.
func NewProcessDriverSearchCommand() ProcessDriverSearchCommand {
	return ProcessDriverSearchCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessDriverSearchCommandIsNotConstructed if validation fails.
func (c *ProcessDriverSearchCommand) Validate() error {
	return c.guard.Validate(
		ErrProcessDriverSearchCommandIsNotConstructed,
	)
}
