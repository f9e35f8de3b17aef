package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// entities. The scheduler only reads assignments; creating them is the
// AssignmentService's job.
type AssignmentRepository interface {
	// GetByOrder retrieves all assignments ever made for an order,
	// including rejected and expired ones. Returns an empty slice when
	// the order has none.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)
}
