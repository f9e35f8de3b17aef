package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrSearchNotStarted is returned when a search mutation is applied to an
	// order that has no driver search in progress.
	ErrSearchNotStarted = errors.New("order has no driver search in progress")

	// ErrSearchAlreadyCompleted is returned when an attempt is recorded on an
	// order whose driver search has already finished.
	ErrSearchAlreadyCompleted = errors.New("driver search is already completed")
)

// Order is the aggregate root the fulfillment scheduler operates on. The
// wider platform owns most of the order lifecycle; this core reads identity
// and routing fields and mutates only the driver-search metadata and the
// Ready/ReadyForPickup status transitions.
//
// Order maintains these invariants:
//   - searchStartedAt is non-nil iff a driver search is or was in progress
//   - searchAttempts never decreases
//   - searchCompleted, once true, is only reset by starting a new search
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	orderNumber  string
	shopOwnerID  kernel.UUID
	customerID   kernel.UUID
	deliveryType DeliveryType
	status       Status

	// Driver-search metadata, persisted with the order so a process
	// restart does not lose search progress.
	searchStartedAt *time.Time
	searchAttempts  int
	searchCompleted bool

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with no driver search
// metadata. All identity parameters are validated; the order number must be
// non-empty.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	shopOwnerID kernel.UUID,
	customerID kernel.UUID,
	deliveryType DeliveryType,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setShopOwnerID(shopOwnerID),
		o.setCustomerID(customerID),
		o.setDeliveryType(deliveryType),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status
// and driver-search metadata. Used by repositories when mapping database
// rows back to the aggregate.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	shopOwnerID kernel.UUID,
	customerID kernel.UUID,
	deliveryType DeliveryType,
	status Status,
	searchStartedAt *time.Time,
	searchAttempts int,
	searchCompleted bool,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, shopOwnerID, customerID, deliveryType)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if searchAttempts < 0 {
		return nil, errs.NewValueIsInvalidError("searchAttempts")
	}
	if searchStartedAt == nil && (searchAttempts > 0 || searchCompleted) {
		return nil, errs.NewValueIsInvalidError("searchStartedAt")
	}

	o.status = status
	if searchStartedAt != nil {
		startedAt := *searchStartedAt
		o.searchStartedAt = &startedAt
	}
	o.searchAttempts = searchAttempts
	o.searchCompleted = searchCompleted

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number used in
// notifications and alerts.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ShopOwnerID returns the identifier of the shop owner the order belongs to.
func (o *Order) ShopOwnerID() kernel.UUID {
	return o.shopOwnerID
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// DeliveryType returns the order's delivery type.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// SearchStartedAt returns the time the current driver search began, or nil
// if no search has ever been started.
func (o *Order) SearchStartedAt() *time.Time {
	if o.searchStartedAt == nil {
		return nil
	}
	startedAt := *o.searchStartedAt
	return &startedAt
}

// SearchAttempts returns the number of assignment attempts made during the
// current driver search.
func (o *Order) SearchAttempts() int {
	return o.searchAttempts
}

// SearchCompleted reports whether the current driver search has finished,
// either by a successful assignment or by a declared timeout.
func (o *Order) SearchCompleted() bool {
	return o.searchCompleted
}

// IsSearching reports whether a driver search is currently in progress.
func (o *Order) IsSearching() bool {
	return o.searchStartedAt != nil && !o.searchCompleted
}

// StartSearch begins a driver search: the search clock is set to now, the
// attempt counter is reset, and the completed flag is cleared.
//
// The order must be in ReadyForPickup status. Calling StartSearch again on
// the same order restarts the search rather than accumulating state, so a
// double call is equivalent to a single one.
func (o *Order) StartSearch(now time.Time) error {
	if err := o.status.ValidateSearchable(); err != nil {
		return err
	}

	o.searchStartedAt = &now
	o.searchAttempts = 0
	o.searchCompleted = false
	return nil
}

// ResetSearch restarts the driver search after a timeout, forcing the status
// back to ReadyForPickup. Used by the operator-facing "try again" flow for
// orders that reverted to Ready.
func (o *Order) ResetSearch(now time.Time) error {
	newStatus, err := o.status.MarkReadyForPickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	return o.StartSearch(now)
}

// RecordSearchAttempt increments the attempt counter for the current
// search. The counter is monotonic: it is rejected once the search has
// completed, and nothing ever decrements it.
func (o *Order) RecordSearchAttempt() error {
	if o.searchStartedAt == nil {
		return ErrSearchNotStarted
	}
	if o.searchCompleted {
		return ErrSearchAlreadyCompleted
	}

	o.searchAttempts++
	return nil
}

// CompleteSearch marks the driver search finished after a successful
// assignment. Completing an already-completed search is a no-op, so the flag
// is never un-set by repeated ticks.
func (o *Order) CompleteSearch() error {
	if o.searchStartedAt == nil {
		return ErrSearchNotStarted
	}

	o.searchCompleted = true
	return nil
}

// FailSearch declares the driver search timed out: the search is marked
// completed and the status reverts to Ready so the shop owner can retry.
func (o *Order) FailSearch() error {
	if o.searchStartedAt == nil {
		return ErrSearchNotStarted
	}

	newStatus, err := o.status.RevertToReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.searchCompleted = true
	return nil
}

// SearchElapsed returns how long the current driver search has been
// running. The second return value is false when no search was started.
func (o *Order) SearchElapsed(now time.Time) (time.Duration, bool) {
	if o.searchStartedAt == nil {
		return 0, false
	}
	return now.Sub(*o.searchStartedAt), true
}

// SearchExpired reports whether the current search has exhausted its retry
// budget: either the elapsed time reached timeout or the attempt counter
// reached maxAttempts.
func (o *Order) SearchExpired(now time.Time, timeout time.Duration, maxAttempts int) bool {
	elapsed, ok := o.SearchElapsed(now)
	if !ok {
		return false
	}
	return elapsed >= timeout || o.searchAttempts >= maxAttempts
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setShopOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopOwnerID", err)
	}
	o.shopOwnerID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}
