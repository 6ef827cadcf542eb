package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
// through NewDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is the tracking record appended by the assignment transaction when
// a courier accepts an order. Downstream delivery tracking owns its further
// lifecycle; the engine only creates it.
type Delivery struct {
	orderID       kernel.UUID
	courierID     kernel.UUID
	zoneID        *kernel.UUID
	assignedAt    time.Time
	isConstructed bool
}

// NewDelivery creates a validated delivery record. zoneID may be nil for
// city-wide fallback assignments.
func NewDelivery(orderID, courierID kernel.UUID, zoneID *kernel.UUID, assignedAt time.Time) (*Delivery, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if zoneID != nil {
		if err := zoneID.Validate(); err != nil {
			return nil, err
		}
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &Delivery{
		orderID:       orderID,
		courierID:     courierID,
		zoneID:        zoneID,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery was created through NewDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// OrderID returns the delivered order's id.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// CourierID returns the assigned courier's id.
func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

// ZoneID returns the zone the order resolved into, nil for city-wide matches.
func (d *Delivery) ZoneID() *kernel.UUID {
	return d.zoneID
}

// AssignedAt returns the assignment timestamp.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}
