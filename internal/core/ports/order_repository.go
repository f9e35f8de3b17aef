// Package ports defines the contracts between the scheduler core and its
// collaborators: the order store, the assignment service, and the
// notification pipeline. These interfaces establish the boundary between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The scheduler writes narrowly: only status and the driver-search metadata
// fields it owns.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the
	// order vanished between query and processing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllSearching retrieves orders with an active driver search:
	// ReadyForPickup status, search started, search not completed.
	// The driver search loop processes this set every tick.
	GetAllSearching(ctx context.Context) ([]*order.Order, error)

	// GetAllReadyForHomeDelivery retrieves ReadyForPickup orders with the
	// HomeDelivery type. The unassigned-order retry loop filters this set
	// down to orders without a success-track assignment, as a second line
	// of defense behind the driver search loop.
	GetAllReadyForHomeDelivery(ctx context.Context) ([]*order.Order, error)

	// GetAllPending retrieves orders still awaiting shop-owner
	// acceptance. The reminder loop nags owners about this set.
	GetAllPending(ctx context.Context) ([]*order.Order, error)
}
