// Package ports defines the interfaces between the assignment core and
// infrastructure. Repositories, the unit of work and the external providers
// (geocoding, routing, courier responses) are all expressed here so the
// use cases stay storage- and transport-agnostic.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
)

// ZoneRepository provides read access to delivery zones and their settings.
type ZoneRepository interface {
	// GetAllActive returns every active zone with a usable polygon.
	// Zones whose geometry cannot be decoded are skipped, not surfaced
	// as errors.
	GetAllActive(ctx context.Context) ([]*zone.Zone, error)

	// GetMeta returns the delivery settings for a zone.
	// Returns errs.ObjectNotFoundError when the zone has no settings row.
	GetMeta(ctx context.Context, zoneID kernel.UUID) (*zone.Meta, error)
}
