package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
)

// ZoneResolver locates the service zone a drop point falls into.
//
// Resolution walks the active zones in the order given and returns the first
// zone that covers the point; zones are assumed non-overlapping, and when
// they do overlap the first match wins deterministically. Boundary points
// count as inside. A point outside every zone is a normal outcome, reported
// through the boolean, not an error.
type ZoneResolver struct{}

// NewZoneResolver creates a new ZoneResolver instance.
func NewZoneResolver() ZoneResolver {
	return ZoneResolver{}
}

// Resolve returns the first zone covering the point, or ok=false when no
// active zone covers it.
func (ZoneResolver) Resolve(point kernel.GeoPoint, zones []*zone.Zone) (*zone.Zone, bool, error) {
	if err := point.Validate(); err != nil {
		return nil, false, err
	}

	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, false, err
		}
		if !z.IsActive() {
			continue
		}

		inside, err := z.Contains(point)
		if err != nil {
			return nil, false, err
		}
		if inside {
			return z, true, nil
		}
	}

	return nil, false, nil
}
