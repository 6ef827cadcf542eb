// Package zonerepo reads delivery zones and their settings with GORM. Zone
// geometry is stored as opaque text and decoded through the domain geometry
// parser on load.
package zonerepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO represents the database structure of a delivery zone. Geometry
// holds one of the supported boundary encodings verbatim.
type ZoneDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title    string
	Geometry string `gorm:"type:text"`
	IsActive bool
}

// TableName overrides GORM's default naming convention.
func (ZoneDTO) TableName() string {
	return "zones"
}

// ZoneSettingsDTO carries the delivery parameters of a zone.
type ZoneSettingsDTO struct {
	ZoneID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryFee     float64
	MinOrderAmount  float64
	DeliveryTimeMin int
	DeliveryTimeMax int
	IsActive        bool
}

// TableName overrides GORM's default naming convention.
func (ZoneSettingsDTO) TableName() string {
	return "zone_settings"
}

// toDomain decodes a zone row into the aggregate, parsing the stored
// geometry.
func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ring, err := zone.ParseGeometry(dto.Geometry)
	if err != nil {
		return nil, err
	}

	return zone.NewZone(id, dto.Title, ring, dto.IsActive)
}

// metaToDomain decodes a settings row.
func metaToDomain(dto ZoneSettingsDTO) (*zone.Meta, error) {
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	return zone.NewMeta(zoneID, dto.DeliveryFee, dto.MinOrderAmount,
		dto.DeliveryTimeMin, dto.DeliveryTimeMax, dto.IsActive)
}
