package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetSearchingOrdersQueryIsNotConstructed = errors.New(
		"GetSearchingOrdersQuery must be created via NewGetSearchingOrdersQuery constructor",
	)
)

// GetSearchingOrdersQuery retrieves all orders with a driver search in
// progress. Operators use it to watch which orders are still looking for a
// delivery partner and how many attempts each has burned.
//
// Example:
//
//	query := NewGetSearchingOrdersQuery()
//	handler := NewGetSearchingOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get searching orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Order %s: attempt %d, searching since %s\n",
//	        o.OrderNumber, o.SearchAttempts, o.SearchStartedAt)
//	}
type GetSearchingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSearchingOrdersQuery creates a query to retrieve orders with an
// active driver search. This is a parameterless query.
func NewGetSearchingOrdersQuery() GetSearchingOrdersQuery {
	return GetSearchingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSearchingOrdersQueryIsNotConstructed if validation fails.
func (q GetSearchingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSearchingOrdersQueryIsNotConstructed)
}

// GetSearchingOrdersQueryResponse represents one order with a driver search
// in progress.
type GetSearchingOrdersQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	SearchStartedAt time.Time
	SearchAttempts  int
}
