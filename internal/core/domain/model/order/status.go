package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as seen by the
// fulfillment scheduler. The full platform defines more transitions; this
// core only drives the ones around driver search.
//
// Relevant transitions:
//
//	Pending ──> Preparing ──> Ready ──> ReadyForPickup ──> OutForDelivery ──> Delivered
//	   │                        ▲               │
//	   ├──> Rejected            └───────────────┘
//	   └──> Cancelled            (search timeout reverts to Ready)
//
// Status is a value object that validates transitions and provides string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is waiting for the shop
	// owner to accept it. The reminder loop acts on these orders.
	Pending

	// Preparing indicates the shop owner accepted the order and is
	// preparing it.
	Preparing

	// Ready indicates the order is prepared but no driver search is
	// running. Search timeouts revert orders to this status so a human
	// can retry.
	Ready

	// ReadyForPickup indicates the order awaits a delivery partner. The
	// driver search and unassigned-retry loops act on these orders.
	ReadyForPickup

	// OutForDelivery indicates a partner picked the order up.
	OutForDelivery

	// Delivered indicates the order reached the customer. Final state.
	Delivered

	// Cancelled indicates the customer cancelled the order. Final state.
	Cancelled

	// Rejected indicates the shop owner declined the order. Final state.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Preparing:      "Preparing",
		Ready:          "Ready",
		ReadyForPickup: "ReadyForPickup",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Rejected:       "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Preparing:      "Preparing",
		Ready:          "Ready",
		ReadyForPickup: "ReadyForPickup",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Rejected:       "Rejected",
	}
}

// Validate checks if the Status value is one of the defined statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// ValidateSearchable checks that a driver search may run while the order is
// in this status.
//
// Only ReadyForPickup orders search for drivers. The check is performed
// without side effects so callers can pre-validate before mutating state.
func (s Status) ValidateSearchable() error {
	if s != ReadyForPickup {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to search for a driver", s.String()),
		)
	}
	return nil
}

// RevertToReady transitions the status back to Ready after a failed driver
// search.
//
// Valid transitions:
//   - ReadyForPickup -> Ready (search timed out, shop owner may retry)
//   - Ready -> Ready (already reverted)
//
// Returns (0, error) if the transition is not allowed from the current
// status.
func (s Status) RevertToReady() (Status, error) {
	if s != ReadyForPickup && s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to revert to ready", s.String()),
		)
	}

	return Ready, nil
}

// MarkReadyForPickup transitions the status to ReadyForPickup so a new
// driver search can start.
//
// Valid transitions:
//   - Ready -> ReadyForPickup (operator retry after a timeout)
//   - ReadyForPickup -> ReadyForPickup (search restart)
//
// Returns (0, error) if the transition is not allowed from the current
// status.
func (s Status) MarkReadyForPickup() (Status, error) {
	if s != Ready && s != ReadyForPickup {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready for pickup", s.String()),
		)
	}

	return ReadyForPickup, nil
}
