package assignment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery-partner assignment.
//
// State transitions:
//
//	Assigned ──> Accepted ──> PickedUp ──> Delivered
//	    │
//	    ├──> Rejected
//	    └──> Expired
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned indicates the assignment was created and the partner has
	// not responded yet.
	Assigned

	// Accepted indicates the partner accepted the delivery.
	Accepted

	// PickedUp indicates the partner collected the order from the shop.
	PickedUp

	// Delivered indicates the partner handed the order to the customer.
	// Final state.
	Delivered

	// Rejected indicates the partner declined the assignment. Final state.
	Rejected

	// Expired indicates the partner did not respond in time. Final state.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
		Rejected:  "Rejected",
		Expired:   "Expired",
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Expired {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsSuccessTrack reports whether the assignment is on the path to a
// completed delivery. Orders with a success-track assignment are excluded
// from the unassigned-order retry loop.
func (s Status) IsSuccessTrack() bool {
	return s == Accepted || s == PickedUp || s == Delivered
}

// IsActive reports whether the assignment currently binds the order to a
// partner. At most one active assignment may exist per order; the
// persistence layer enforces this with a unique constraint.
func (s Status) IsActive() bool {
	return s == Assigned || s == Accepted || s == PickedUp
}
