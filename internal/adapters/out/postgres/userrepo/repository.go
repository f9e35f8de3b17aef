// Package userrepo resolves notification recipients. Users and their
// registered devices are owned by the wider platform; this core only reads
// them to find out where a push or an email should go.
package userrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the subset of the users table this core reads.
type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
}

// TableName specifies the database table name for user rows.
func (UserDTO) TableName() string {
	return "users"
}

// DeviceTokenDTO represents one registered push target of a user. Tokens
// are revoked on logout, so only rows with is_active survive as targets.
type DeviceTokenDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Token      string    `gorm:"not null"`
	DeviceType string
	IsActive   bool
}

// TableName specifies the database table name for device tokens.
func (DeviceTokenDTO) TableName() string {
	return "device_tokens"
}

// GormUserRepository implements RecipientDirectory and EmailDirectory
// against the platform's users and device_tokens tables.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindActiveTargets retrieves the user's active push targets. A user with
// no registered devices yields an empty slice, not an error.
func (r *GormUserRepository) FindActiveTargets(ctx context.Context, userID kernel.UUID) ([]notification.Target, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeviceTokenDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active", userID.Bytes()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	targets := make([]notification.Target, 0, len(dtos))
	for _, dto := range dtos {
		targets = append(targets, notification.Target{
			UserID:     userID,
			Token:      dto.Token,
			DeviceType: dto.DeviceType,
		})
	}

	return targets, nil
}

// FindEmail retrieves the user's contact email address.
func (r *GormUserRepository) FindEmail(ctx context.Context, userID kernel.UUID) (string, error) {
	if err := userID.Validate(); err != nil {
		return "", err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("user", userID.String())
		}
		return "", err
	}

	return dto.Email, nil
}
