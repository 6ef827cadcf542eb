// Package zone contains the service-zone aggregate: a geofenced delivery area
// defined by a polygon ring plus delivery-window metadata.
package zone

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrZoneIsNotConstructed is returned when a Zone instance was not created
// through the NewZone factory method.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a geofenced service area. It owns its boundary ring; delivery
// metadata (fees, ETA window) lives in ZoneMeta, which references the zone by
// id without owning the geometry.
//
// Invariants:
//   - id and title are required
//   - the ring is simple (validated by kernel.NewPolygonRing)
//   - only active zones take part in resolution
type Zone struct {
	id            kernel.UUID
	title         string
	ring          kernel.PolygonRing
	active        bool
	isConstructed bool
}

// NewZone creates a validated Zone.
func NewZone(id kernel.UUID, title string, ring kernel.PolygonRing, active bool) (*Zone, error) {
	z := &Zone{isConstructed: true}

	if err := errors.Join(
		z.setID(id),
		z.setTitle(title),
		z.setRing(ring),
	); err != nil {
		return nil, err
	}

	z.active = active
	return z, nil
}

// Validate ensures the Zone was constructed via NewZone.
func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Title returns the human-readable zone name.
func (z *Zone) Title() string {
	return z.title
}

// Ring returns the zone boundary.
func (z *Zone) Ring() kernel.PolygonRing {
	return z.ring
}

// IsActive reports whether the zone takes part in resolution.
func (z *Zone) IsActive() bool {
	return z.active
}

// Contains reports whether the point falls within the zone boundary.
// Boundary points are inside; see kernel.PolygonRing.Contains.
func (z *Zone) Contains(p kernel.GeoPoint) (bool, error) {
	if err := z.Validate(); err != nil {
		return false, err
	}
	return z.ring.Contains(p)
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	z.title = title
	return nil
}

func (z *Zone) setRing(ring kernel.PolygonRing) error {
	if err := ring.Validate(); err != nil {
		return err
	}
	z.ring = ring
	return nil
}
