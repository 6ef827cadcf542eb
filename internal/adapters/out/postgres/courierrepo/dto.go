// Package courierrepo persists courier aggregates with GORM, mapping between
// the domain model and the couriers table.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Performance columns are nullable: couriers without history get
// the domain defaults on load.
type CourierDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name             string
	IsActive         bool
	Position         PositionDTO `gorm:"embedded;embeddedPrefix:position_"`
	IsOnline         bool
	IsAvailable      bool
	ActiveOrderCount int
	MaxCapacity      int
	AcceptanceRate   *float64
	AvgDeliveryTime  *int
}

// TableName overrides GORM's default naming convention.
func (CourierDTO) TableName() string {
	return "couriers"
}

// PositionDTO is the courier's last reported location embedded in the
// couriers table.
type PositionDTO struct {
	Lat float64
	Lng float64
}

// CourierZoneDTO is the route-coverage join table: which zones a courier
// serves.
type CourierZoneDTO struct {
	CourierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ZoneID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName overrides GORM's default naming convention.
func (CourierZoneDTO) TableName() string {
	return "courier_zones"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	rate := aggregate.AcceptanceRate()
	avg := aggregate.AvgDeliveryTime()

	return CourierDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		IsActive: aggregate.IsActive(),
		Position: PositionDTO{
			Lat: aggregate.Position().Lat(),
			Lng: aggregate.Position().Lng(),
		},
		IsOnline:         aggregate.IsOnline(),
		IsAvailable:      aggregate.IsAvailable(),
		ActiveOrderCount: aggregate.ActiveOrderCount(),
		MaxCapacity:      aggregate.MaxCapacity(),
		AcceptanceRate:   &rate,
		AvgDeliveryTime:  &avg,
	}
}

// toDomain reconstructs the courier aggregate from a database row,
// substituting the performance defaults for missing history.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	position, err := kernel.NewGeoPoint(dto.Position.Lat, dto.Position.Lng)
	if err != nil {
		return nil, err
	}

	rate := courier.DefaultAcceptanceRate
	if dto.AcceptanceRate != nil {
		rate = *dto.AcceptanceRate
	}

	avg := courier.DefaultAvgDeliveryTime
	if dto.AvgDeliveryTime != nil {
		avg = *dto.AvgDeliveryTime
	}

	return courier.RestoreCourier(id, dto.Name, dto.IsActive, position,
		dto.IsOnline, dto.IsAvailable, dto.ActiveOrderCount, dto.MaxCapacity,
		rate, avg)
}
