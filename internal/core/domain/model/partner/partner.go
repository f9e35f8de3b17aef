// Package partner provides the delivery-partner read model the scheduler
// consults when deciding whether an assignment attempt is worth making.
// Partner onboarding and state changes belong to the wider platform.
package partner

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrPartnerIsNotConstructed is returned when a Partner instance was not
// created through RestorePartner.
var ErrPartnerIsNotConstructed = errors.New("Partner must be created via RestorePartner constructor")

// Partner is a delivery partner as this core sees them: identity, contact,
// and the three availability flags the platform maintains.
type Partner struct {
	id          kernel.UUID
	name        string
	email       string
	isActive    bool
	isAvailable bool
	isOnline    bool

	isConstructed bool
}

// RestorePartner reconstructs a partner from persistence.
func RestorePartner(id kernel.UUID, name, email string, isActive, isAvailable, isOnline bool) (*Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Partner{
		id:            id,
		name:          name,
		email:         email,
		isActive:      isActive,
		isAvailable:   isAvailable,
		isOnline:      isOnline,
		isConstructed: true,
	}, nil
}

// Validate ensures the Partner was properly constructed.
func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Email returns the partner's contact email.
func (p *Partner) Email() string {
	return p.email
}

// IsActive reports whether the partner's account is enabled.
func (p *Partner) IsActive() bool {
	return p.isActive
}

// IsAvailable reports whether the partner opted in for deliveries.
func (p *Partner) IsAvailable() bool {
	return p.isAvailable
}

// IsOnline reports whether the partner's device is currently connected.
func (p *Partner) IsOnline() bool {
	return p.isOnline
}

// CanDeliver reports whether the partner may receive an assignment right
// now: active account, opted in, and online.
func (p *Partner) CanDeliver() bool {
	return p.isActive && p.isAvailable && p.isOnline
}
