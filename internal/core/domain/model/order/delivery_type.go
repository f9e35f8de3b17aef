package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryType distinguishes orders the customer collects from orders a
// delivery partner brings to the customer. Only HomeDelivery orders run
// driver searches.
type DeliveryType int

const (
	// UnknownDelivery represents an invalid or undefined delivery type.
	UnknownDelivery DeliveryType = iota

	// HomeDelivery orders require a delivery partner.
	HomeDelivery

	// SelfPickup orders are collected by the customer at the shop.
	SelfPickup
)

// Validate checks if the DeliveryType is one of the defined types.
func (d DeliveryType) Validate() error {
	if d != HomeDelivery && d != SelfPickup {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery type is invalid",
			fmt.Errorf("%d is not a valid delivery type", d),
		)
	}
	return nil
}

// String returns the human-readable name of the delivery type.
func (d DeliveryType) String() string {
	switch d {
	case HomeDelivery:
		return "HomeDelivery"
	case SelfPickup:
		return "SelfPickup"
	default:
		return "Unknown"
	}
}
