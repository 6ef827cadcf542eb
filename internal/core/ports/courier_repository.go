package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository provides access to courier aggregates.
type CourierRepository interface {
	// Get loads a courier by id.
	// Returns errs.ObjectNotFoundError when the courier does not exist.
	Get(ctx context.Context, courierID kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable returns every eligible courier city-wide:
	// active, online, available and below capacity.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// GetAvailableInZone returns eligible couriers restricted to a zone.
	GetAvailableInZone(ctx context.Context, zoneID kernel.UUID) ([]*courier.Courier, error)

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// ReserveCapacity atomically increments the courier's active order
	// count, guarded by the capacity limit in the same statement.
	// Returns errs.ObjectNotFoundError when the guard matched no row,
	// meaning the courier filled up since candidate selection.
	ReserveCapacity(ctx context.Context, courierID kernel.UUID) error
}
