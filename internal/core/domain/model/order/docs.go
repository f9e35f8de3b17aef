// Package order provides the Order aggregate the fulfillment scheduler
// operates on, together with the Status and DeliveryType value objects.
//
// The package includes:
//   - Order: the aggregate root carrying identity, routing fields, and the
//     persisted driver-search metadata (start time, attempt counter,
//     completion flag)
//   - Status: a state machine restricted to the transitions this core owns
//     (Ready <-> ReadyForPickup around driver searches)
//   - DeliveryType: HomeDelivery vs SelfPickup
//
// Key business rules:
//   - Only ReadyForPickup orders run driver searches
//   - Search attempt counters are monotonic and survive process restarts
//     because they live on the order row
//   - A completed search is never un-completed by repeated scheduler ticks;
//     only an explicit restart resets it
//   - A timed-out search reverts the order to Ready so a human can retry
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
