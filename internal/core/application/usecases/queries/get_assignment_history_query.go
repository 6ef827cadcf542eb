package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrGetAssignmentHistoryQueryIsNotConstructed is returned when the query was
// not created through its constructor.
var ErrGetAssignmentHistoryQueryIsNotConstructed = errors.New(
	"GetAssignmentHistoryQuery must be created via NewGetAssignmentHistoryQuery constructor",
)

// GetAssignmentHistoryQuery lists the most recent offer records across all
// orders, newest first.
type GetAssignmentHistoryQuery struct {
	limit int

	isConstructed bool
}

// NewGetAssignmentHistoryQuery creates a history query returning at most
// limit rows.
func NewGetAssignmentHistoryQuery(limit int) (GetAssignmentHistoryQuery, error) {
	if limit <= 0 {
		return GetAssignmentHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}

	return GetAssignmentHistoryQuery{
		limit:         limit,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentHistoryQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetAssignmentHistoryQueryIsNotConstructed
	}
	return nil
}

// Limit returns the maximum number of rows to return.
func (q GetAssignmentHistoryQuery) Limit() int {
	return q.limit
}

// GetAssignmentHistoryQueryResponse is one offer record row.
type GetAssignmentHistoryQueryResponse struct {
	OrderID    kernel.UUID
	CourierID  kernel.UUID
	Score      float64
	Status     string
	AssignedAt time.Time
}
