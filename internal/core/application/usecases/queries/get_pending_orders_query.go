// Package queries contains the read-side operations of the assignment engine.
// Query handlers read the database directly with raw SQL, bypassing the
// domain aggregates; they never mutate state.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrGetPendingOrdersQueryIsNotConstructed is returned when the query was not
// created through its constructor.
var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery lists the unassigned backlog of one intake source,
// oldest first. This is the same predicate the batch pass scans, exposed for
// monitoring.
type GetPendingOrdersQuery struct {
	source order.Source

	isConstructed bool
}

// NewGetPendingOrdersQuery creates a backlog query for one intake source.
func NewGetPendingOrdersQuery(source order.Source) (GetPendingOrdersQuery, error) {
	if err := source.Validate(); err != nil {
		return GetPendingOrdersQuery{}, err
	}

	return GetPendingOrdersQuery{
		source:        source,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetPendingOrdersQueryIsNotConstructed
	}
	return nil
}

// Source returns the intake source to list.
func (q GetPendingOrdersQuery) Source() order.Source {
	return q.source
}

// GetPendingOrdersQueryResponse is one backlog row.
type GetPendingOrdersQueryResponse struct {
	ID        kernel.UUID
	UserName  string
	Address   string
	CreatedAt time.Time
}
