package zone

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrMetaIsNotConstructed is returned when a Meta instance was not created
// through the NewMeta factory method.
var ErrMetaIsNotConstructed = errors.New("zone Meta must be created via NewMeta constructor")

// Meta carries the delivery parameters of a zone: fee, minimum order amount
// and the [min, max] minutes window a courier's ETA must fall into when ETA
// gating is enabled. Meta references its zone by id; it does not own the
// geometry.
type Meta struct {
	zoneID          kernel.UUID
	deliveryFee     float64
	minOrderAmount  float64
	deliveryTimeMin int
	deliveryTimeMax int
	active          bool
	isConstructed   bool
}

// NewMeta creates validated zone metadata.
// The ETA window must satisfy 0 <= min <= max.
func NewMeta(zoneID kernel.UUID, deliveryFee, minOrderAmount float64, deliveryTimeMin, deliveryTimeMax int, active bool) (*Meta, error) {
	m := &Meta{isConstructed: true}

	if err := zoneID.Validate(); err != nil {
		return nil, err
	}
	if deliveryTimeMin < 0 {
		return nil, errs.NewValueIsOutOfRangeError("deliveryTimeMin", deliveryTimeMin, 0, deliveryTimeMax)
	}
	if deliveryTimeMax < deliveryTimeMin {
		return nil, errs.NewValueIsOutOfRangeError("deliveryTimeMax", deliveryTimeMax, deliveryTimeMin, deliveryTimeMax)
	}

	m.zoneID = zoneID
	m.deliveryFee = deliveryFee
	m.minOrderAmount = minOrderAmount
	m.deliveryTimeMin = deliveryTimeMin
	m.deliveryTimeMax = deliveryTimeMax
	m.active = active
	return m, nil
}

// Validate ensures the Meta was constructed via NewMeta.
func (m *Meta) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMetaIsNotConstructed
	}
	return nil
}

// ZoneID returns the id of the zone this metadata belongs to.
func (m *Meta) ZoneID() kernel.UUID {
	return m.zoneID
}

// DeliveryFee returns the zone delivery fee.
func (m *Meta) DeliveryFee() float64 {
	return m.deliveryFee
}

// MinOrderAmount returns the minimum order amount for the zone.
func (m *Meta) MinOrderAmount() float64 {
	return m.minOrderAmount
}

// DeliveryTimeMin returns the lower ETA bound in minutes.
func (m *Meta) DeliveryTimeMin() int {
	return m.deliveryTimeMin
}

// DeliveryTimeMax returns the upper ETA bound in minutes.
func (m *Meta) DeliveryTimeMax() int {
	return m.deliveryTimeMax
}

// IsActive reports whether deliveries in this zone are currently enabled.
func (m *Meta) IsActive() bool {
	return m.active
}

// ETAWithinWindow reports whether a courier ETA in minutes falls inside the
// zone's delivery window, bounds inclusive.
func (m *Meta) ETAWithinWindow(etaMinutes int) bool {
	return etaMinutes >= m.deliveryTimeMin && etaMinutes <= m.deliveryTimeMax
}
