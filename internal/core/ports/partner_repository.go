package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/partner"
)

// PartnerRepository defines the read contract for delivery partners.
// Partner lifecycle management lives outside this core.
type PartnerRepository interface {
	// GetAllAvailable retrieves partners that can take an assignment
	// right now: active account, opted in for deliveries, and online.
	// The driver search loop checks this before spending an assignment
	// attempt, so a tick with no partners costs one counter increment
	// and no collaborator call.
	GetAllAvailable(ctx context.Context) ([]*partner.Partner, error)
}
