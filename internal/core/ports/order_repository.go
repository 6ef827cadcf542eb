package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository provides access to order aggregates.
type OrderRepository interface {
	// Get loads an order by id.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// GetAllPending returns unassigned orders from one intake source,
	// oldest first. Already-handled orders never reappear here, which is
	// what makes repeated passes over the same backlog safe.
	GetAllPending(ctx context.Context, source order.Source) ([]*order.Order, error)

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error
}
