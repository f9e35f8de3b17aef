// Package http exposes the operator API of the fulfillment scheduler:
// manual driver-search control, tracking state inspection, and a health
// endpoint for the deployment.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope for all failed responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SearchingOrder is one order with an active driver search.
type SearchingOrder struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	SearchStartedAt time.Time `json:"search_started_at"`
	SearchAttempts  int       `json:"search_attempts"`
}

// RetryStatusResponse reports the retry-loop tracking state of one order.
type RetryStatusResponse struct {
	OrderID        string     `json:"order_id"`
	Tracked        bool       `json:"tracked"`
	Attempts       int        `json:"attempts"`
	FirstAttemptAt *time.Time `json:"first_attempt_at,omitempty"`
	AgeSeconds     float64    `json:"age_seconds"`
}

// ReminderStatusResponse reports the reminder-loop tracking state of one order.
type ReminderStatusResponse struct {
	OrderID         string     `json:"order_id"`
	Tracked         bool       `json:"tracked"`
	Reminders       int        `json:"reminders"`
	FirstReminderAt *time.Time `json:"first_reminder_at,omitempty"`
	AgeSeconds      float64    `json:"age_seconds"`
}

// HealthChecker reports whether a downstream dependency is reachable.
type HealthChecker interface {
	Ping() error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startSearchHandler commands.StartDriverSearchCommandHandler
	resetSearchHandler commands.ResetDriverSearchCommandHandler

	// Query handlers
	searchingOrdersHandler queries.GetSearchingOrdersQueryHandler

	// In-process tracking state
	retryTracker    *services.RetryTracker
	reminderTracker *services.ReminderTracker

	broker HealthChecker
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	startSearchHandler commands.StartDriverSearchCommandHandler,
	resetSearchHandler commands.ResetDriverSearchCommandHandler,
	searchingOrdersHandler queries.GetSearchingOrdersQueryHandler,
	retryTracker *services.RetryTracker,
	reminderTracker *services.ReminderTracker,
	broker HealthChecker,
) *Server {
	return &Server{
		startSearchHandler:     startSearchHandler,
		resetSearchHandler:     resetSearchHandler,
		searchingOrdersHandler: searchingOrdersHandler,
		retryTracker:           retryTracker,
		reminderTracker:        reminderTracker,
		broker:                 broker,
	}
}

// RegisterRoutes attaches all operator API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:id/driver-search", s.StartDriverSearch)
	api.POST("/orders/:id/driver-search/reset", s.ResetDriverSearch)
	api.GET("/orders/:id/retry-status", s.GetRetryStatus)
	api.GET("/orders/:id/reminder-status", s.GetReminderStatus)
	api.DELETE("/orders/:id/retry-tracking", s.ClearRetryTracking)
	api.DELETE("/orders/:id/reminder-tracking", s.ClearReminderTracking)
	api.GET("/orders/searching", s.GetSearchingOrders)

	e.GET("/health", s.GetHealth)
}

// StartDriverSearch handles POST /api/v1/orders/:id/driver-search - starts
// a driver search for a ReadyForPickup order.
func (s *Server) StartDriverSearch(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewStartDriverSearchCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if handleErr := s.startSearchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return searchCommandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ResetDriverSearch handles POST /api/v1/orders/:id/driver-search/reset -
// restarts the search for an order that timed out back to Ready.
func (s *Server) ResetDriverSearch(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewResetDriverSearchCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if handleErr := s.resetSearchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return searchCommandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetSearchingOrders handles GET /api/v1/orders/searching - lists all
// orders with an active driver search.
func (s *Server) GetSearchingOrders(ctx echo.Context) error {
	query := queries.NewGetSearchingOrdersQuery()

	orders, err := s.searchingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve searching orders",
		})
	}

	response := make([]SearchingOrder, len(orders))
	for i, o := range orders {
		response[i] = SearchingOrder{
			ID:              o.ID.String(),
			OrderNumber:     o.OrderNumber,
			SearchStartedAt: o.SearchStartedAt,
			SearchAttempts:  o.SearchAttempts,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRetryStatus handles GET /api/v1/orders/:id/retry-status.
func (s *Server) GetRetryStatus(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	status := s.retryTracker.Status(orderID, time.Now().UTC())
	return ctx.JSON(http.StatusOK, RetryStatusResponse{
		OrderID:        orderID.String(),
		Tracked:        status.FirstAttemptAt != nil,
		Attempts:       status.Attempts,
		FirstAttemptAt: status.FirstAttemptAt,
		AgeSeconds:     status.Age.Seconds(),
	})
}

// GetReminderStatus handles GET /api/v1/orders/:id/reminder-status.
func (s *Server) GetReminderStatus(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	status := s.reminderTracker.Status(orderID, time.Now().UTC())
	return ctx.JSON(http.StatusOK, ReminderStatusResponse{
		OrderID:         orderID.String(),
		Tracked:         status.FirstReminderAt != nil,
		Reminders:       status.Reminders,
		FirstReminderAt: status.FirstReminderAt,
		AgeSeconds:      status.Age.Seconds(),
	})
}

// ClearRetryTracking handles DELETE /api/v1/orders/:id/retry-tracking -
// drops retry state after a manual fix so the loop does not re-alert.
func (s *Server) ClearRetryTracking(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	s.retryTracker.Clear(orderID)
	return ctx.NoContent(http.StatusNoContent)
}

// ClearReminderTracking handles DELETE /api/v1/orders/:id/reminder-tracking.
func (s *Server) ClearReminderTracking(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	s.reminderTracker.Clear(orderID)
	return ctx.NoContent(http.StatusNoContent)
}

// GetHealth handles GET /health. Reports degraded when the message broker
// is unreachable; the scheduler keeps running in that state but alerts and
// reminders stall.
func (s *Server) GetHealth(ctx echo.Context) error {
	if s.broker != nil {
		if err := s.broker.Ping(); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"broker": err.Error(),
			})
		}
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func searchCommandError(ctx echo.Context, err error) error {
	if errors.Is(err, commands.ErrOrderNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return err
	}

	// Status transition refusals surface as conflicts
	return ctx.JSON(http.StatusConflict, Error{
		Code:    http.StatusConflict,
		Message: err.Error(),
	})
}
