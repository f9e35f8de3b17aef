package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSearchingOrdersQueryHandler reads orders with an active driver search
// straight from the database, bypassing the aggregate layer. This is a
// read-only monitoring view so no tracking or transactions are involved.
type GetSearchingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSearchingOrdersQueryHandler creates a handler for searching-order
// queries. Requires a GORM database connection for query execution.
func NewGetSearchingOrdersQueryHandler(db *gorm.DB) GetSearchingOrdersQueryHandler {
	return GetSearchingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders whose driver search is
// still running. Results are sorted by search start time so the oldest
// search comes first.
func (h GetSearchingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSearchingOrdersQuery,
) ([]GetSearchingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetSearchingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			search_started_at,
			search_attempts
		FROM orders
		WHERE status = ?
		  AND search_started_at IS NOT NULL
		  AND NOT search_completed
		ORDER BY search_started_at
	`, order.ReadyForPickup).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetSearchingOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.SearchStartedAt,
			&resp.SearchAttempts,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
