// Package assigner implements the assignment service against postgres. One
// assignment attempt picks an available delivery partner and binds it to
// the order; the partial unique index on assignments makes the binding
// race-safe, so two concurrent loops attempting the same order cannot both
// win.
package assigner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// Service assigns orders to delivery partners.
type Service struct {
	db       *gorm.DB
	partners *partnerrepo.GormPartnerRepository
	logger   *slog.Logger
}

// NewService creates an assignment service on the given database handle.
func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		partners: partnerrepo.NewGormPartnerRepository(db),
		logger:   logger.With("component", "assigner"),
	}
}

// AutoAssign tries one assignment for the order. The first partner that can
// deliver is chosen; partner ranking belongs to a future dispatcher and is
// out of scope here.
//
// Returns an error unwrapping to ports.ErrAssignmentFailed when no partner
// is available or the order already holds an active assignment.
func (s *Service) AutoAssign(
	ctx context.Context,
	orderID kernel.UUID,
	requesterID *kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.partners.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !candidate.CanDeliver() {
			continue
		}

		a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, candidate.ID(), time.Now().UTC())
		if err != nil {
			return nil, err
		}

		dto := assignmentrepo.FromDomain(a)
		if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ports.ErrAssignmentFailed
			}
			return nil, err
		}

		s.logger.InfoContext(ctx, "Assigned order to partner",
			"orderId", orderID,
			"partner", candidate.Name(),
			"requester", requesterLabel(requesterID))
		return a, nil
	}

	return nil, ports.ErrAssignmentFailed
}

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation, meaning the order already has an active assignment.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func requesterLabel(requesterID *kernel.UUID) string {
	if requesterID == nil {
		return "scheduler"
	}
	return requesterID.String()
}
