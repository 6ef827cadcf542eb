// Package http exposes the assignment engine over HTTP: a health check, an
// on-demand assignment pass and the read-side queries.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	processBatchHandler *commands.ProcessOrderBatchCommandHandler

	getPendingOrdersHandler     queries.GetPendingOrdersQueryHandler
	getAssignmentHistoryHandler queries.GetAssignmentHistoryQueryHandler
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(
	processBatchHandler *commands.ProcessOrderBatchCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getAssignmentHistoryHandler queries.GetAssignmentHistoryQueryHandler,
) *Server {
	return &Server{
		processBatchHandler:         processBatchHandler,
		getPendingOrdersHandler:     getPendingOrdersHandler,
		getAssignmentHistoryHandler: getAssignmentHistoryHandler,
	}
}

// Register mounts the routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/assign_orders", s.AssignOrders)
	e.GET("/orders/pending", s.PendingOrders)
	e.GET("/assignments/history", s.AssignmentHistory)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AssignOrders handles GET /assign_orders - runs one assignment pass over
// the immediate backlog and returns the summary.
func (s *Server) AssignOrders(ctx echo.Context) error {
	source := order.Source(ctx.QueryParam("source"))
	if source == "" {
		source = order.SourceImmediate
	}

	cmd, err := commands.NewProcessOrderBatchCommand(source)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown order source",
		})
	}

	result, err := s.processBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Assignment pass failed",
		})
	}

	return ctx.JSON(http.StatusOK, result)
}

// pendingOrderResponse is one row of GET /orders/pending.
type pendingOrderResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// PendingOrders handles GET /orders/pending - lists the unassigned backlog.
func (s *Server) PendingOrders(ctx echo.Context) error {
	source := order.Source(ctx.QueryParam("source"))
	if source == "" {
		source = order.SourceImmediate
	}

	query, err := queries.NewGetPendingOrdersQuery(source)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown order source",
		})
	}

	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending orders",
		})
	}

	response := make([]pendingOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = pendingOrderResponse{
			ID:        o.ID.String(),
			UserName:  o.UserName,
			Address:   o.Address,
			CreatedAt: o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// assignmentHistoryResponse is one row of GET /assignments/history.
type assignmentHistoryResponse struct {
	OrderID    string  `json:"order_id"`
	CourierID  string  `json:"courier_id"`
	Score      float64 `json:"score"`
	Status     string  `json:"status"`
	AssignedAt string  `json:"assigned_at"`
}

// AssignmentHistory handles GET /assignments/history - lists recent offers.
func (s *Server) AssignmentHistory(ctx echo.Context) error {
	query, err := queries.NewGetAssignmentHistoryQuery(100)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build history query",
		})
	}

	records, err := s.getAssignmentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve assignment history",
		})
	}

	response := make([]assignmentHistoryResponse, len(records))
	for i, r := range records {
		response[i] = assignmentHistoryResponse{
			OrderID:    r.OrderID.String(),
			CourierID:  r.CourierID.String(),
			Score:      r.Score,
			Status:     r.Status,
			AssignedAt: r.AssignedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
