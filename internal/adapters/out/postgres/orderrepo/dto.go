// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexes on
// status and delivery type for the scheduler's recurring queries.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"uniqueIndex;not null"`
	ShopOwnerID     uuid.UUID `gorm:"type:uuid;index"`
	CustomerID      uuid.UUID `gorm:"type:uuid"`
	DeliveryType    int       `gorm:"index:idx_orders_status_delivery,priority:2"`
	Status          int       `gorm:"index:idx_orders_status_delivery,priority:1"`
	SearchStartedAt *time.Time
	SearchAttempts  int
	SearchCompleted bool
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID().Bytes(),
		OrderNumber:     o.OrderNumber(),
		ShopOwnerID:     o.ShopOwnerID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		DeliveryType:    int(o.DeliveryType()),
		Status:          int(o.Status()),
		SearchStartedAt: o.SearchStartedAt(),
		SearchAttempts:  o.SearchAttempts(),
		SearchCompleted: o.SearchCompleted(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including driver-search metadata using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopOwnerID, err := kernel.UUIDFromBytes(dto.ShopOwnerID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		shopOwnerID,
		customerID,
		order.DeliveryType(dto.DeliveryType),
		order.Status(dto.Status),
		dto.SearchStartedAt,
		dto.SearchAttempts,
		dto.SearchCompleted,
	)
}
