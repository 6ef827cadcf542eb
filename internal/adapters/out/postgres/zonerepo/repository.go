package zonerepo

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository using GORM.
type GormZoneRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB, logger *slog.Logger) *GormZoneRepository {
	return &GormZoneRepository{
		db:     db,
		logger: logger.With("component", "zone_repository"),
	}
}

// GetAllActive loads every active zone. A zone whose stored geometry cannot
// be decoded into a simple ring is logged and skipped; one bad zone never
// fails a pass.
func (r *GormZoneRepository) GetAllActive(ctx context.Context) ([]*zone.Zone, error) {
	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "is_active = ?", true).Error; err != nil {
		return nil, err
	}

	zones := make([]*zone.Zone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := toDomain(dto)
		if err != nil {
			r.logger.Warn("zone has unusable geometry, skipping",
				"zone_id", dto.ID, "title", dto.Title, "error", err)
			continue
		}
		zones = append(zones, z)
	}

	return zones, nil
}

// GetMeta retrieves the active delivery settings for a zone. A deactivated
// settings row counts as absent: it must not supply an ETA window.
func (r *GormZoneRepository) GetMeta(ctx context.Context, zoneID kernel.UUID) (*zone.Meta, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	var dto ZoneSettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "zone_id = ? AND is_active = ?", zoneID.Bytes(), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone settings", zoneID.String())
		}
		return nil, err
	}

	return metaToDomain(dto)
}
