// Package orderrepo persists order aggregates with GORM, mapping between the
// domain model and the orders table.
package orderrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address   string
	Landmark  string
	UserID    uuid.UUID `gorm:"type:uuid"`
	UserName  string
	Items     string     `gorm:"type:text"`
	Status    int        `gorm:"index"`
	Source    string     `gorm:"index"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	ZoneID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
// Source and CreatedAt belong to intake, not to the aggregate, and stay
// untouched on update.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var zoneID *uuid.UUID
	if id := aggregate.Zone(); id != nil {
		raw := id.Bytes()
		zoneID = &raw
	}

	items, _ := json.Marshal(aggregate.Items())

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Address:   aggregate.Address(),
		Landmark:  aggregate.Landmark(),
		UserID:    aggregate.UserID().Bytes(),
		UserName:  aggregate.UserName(),
		Items:     string(items),
		Status:    int(aggregate.Status()),
		CourierID: courierID,
		ZoneID:    zoneID,
	}
}

// toDomain reconstructs the order aggregate from a database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var zoneID *kernel.UUID
	if dto.ZoneID != nil {
		zID, zoneErr := kernel.UUIDFromBytes((*dto.ZoneID)[:])
		if zoneErr != nil {
			return nil, zoneErr
		}
		zoneID = &zID
	}

	var items []string
	if dto.Items != "" {
		if err = json.Unmarshal([]byte(dto.Items), &items); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, dto.Address, dto.Landmark, userID, dto.UserName,
		items, order.Status(dto.Status), courierID, zoneID)
}
