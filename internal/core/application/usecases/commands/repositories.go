// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence; the three scheduler ticks add a
// per-order error boundary so one bad order never aborts a batch.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest interface that covers the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository
	// within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// PartnerRepoFactory provides access to the partner repository within
	// a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// OrderUoW manages transactions for order-only operations: the
	// operator start/reset commands and the reminder tick.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SearchUoW manages transactions for the driver search tick, which
	// reads available partners alongside the searching orders.
	SearchUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
	}

	// SearchUoWFactory creates new search unit of work instances.
	SearchUoWFactory interface {
		Create() SearchUoW
	}

	// RetryUoW manages transactions for the unassigned-order retry tick,
	// which cross-checks orders against their assignments.
	RetryUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// RetryUoWFactory creates new retry unit of work instances.
	RetryUoWFactory interface {
		Create() RetryUoW
	}
)
