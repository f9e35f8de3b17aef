// Package assignment provides the Assignment entity binding an order to a
// delivery partner, and the Status value object describing the partner's
// progress.
package assignment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through a factory method.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment constructor",
)

// Assignment binds an order to a delivery partner. The Assignment Service
// creates assignments; this core only reads them to decide whether an order
// still needs a partner.
type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	partnerID  kernel.UUID
	status     Status
	assignedAt time.Time

	isConstructed bool
}

// NewAssignment creates a fresh assignment in Assigned status.
func NewAssignment(id, orderID, partnerID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	return RestoreAssignment(id, orderID, partnerID, Assigned, assignedAt)
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, partnerID kernel.UUID,
	status Status,
	assignedAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		partnerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		partnerID:     partnerID,
		status:        status,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Assignment was properly constructed through a
// factory method.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the identifier of the assigned order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// PartnerID returns the identifier of the delivery partner.
func (a *Assignment) PartnerID() kernel.UUID {
	return a.partnerID
}

// Status returns the assignment's current status.
func (a *Assignment) Status() Status {
	return a.status
}

// AssignedAt returns the time the assignment was created.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}
