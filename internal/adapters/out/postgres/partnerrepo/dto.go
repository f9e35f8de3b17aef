// Package partnerrepo provides the read-side repository for delivery
// partners. Partner rows are owned by the wider platform; this core only
// queries which partners can take an assignment right now.
package partnerrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for delivery partners.
type PartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Email       string
	IsActive    bool `gorm:"index:idx_partners_availability,priority:1"`
	IsAvailable bool `gorm:"index:idx_partners_availability,priority:2"`
	IsOnline    bool `gorm:"index:idx_partners_availability,priority:3"`
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// toDomain converts a database DTO to a partner entity.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(id, dto.Name, dto.Email, dto.IsActive, dto.IsAvailable, dto.IsOnline)
}
