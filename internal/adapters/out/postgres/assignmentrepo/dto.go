// Package assignmentrepo provides data transfer objects and mapping
// functions for assignment persistence, plus the read-side repository the
// unassigned-order retry loop uses to cross-check orders against their
// assignments.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting
// assignments. The partial unique index on order_id holds the core
// invariant: at most one active assignment per order. Statuses 1-3 are
// Assigned, Accepted and PickedUp.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_assignments_active_order,where:status BETWEEN 1 AND 3"`
	PartnerID  uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	AssignedAt time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// FromDomain converts an assignment entity to its database representation.
// Exported because the assigner service persists assignments through this
// mapping as well.
func FromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		OrderID:    a.OrderID().Bytes(),
		PartnerID:  a.PartnerID().Bytes(),
		Status:     int(a.Status()),
		AssignedAt: a.AssignedAt(),
	}
}

// toDomain converts a database DTO to an assignment entity.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, orderID, partnerID, assignment.Status(dto.Status), dto.AssignedAt)
}
