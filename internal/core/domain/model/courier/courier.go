// Package courier contains the courier aggregate: identity plus the
// availability and performance state the assignment engine filters and
// scores on.
package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Performance defaults applied when no performance row exists for a courier.
const (
	DefaultAcceptanceRate  = 0.0
	DefaultAvgDeliveryTime = 30
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not
	// created through NewCourier or RestoreCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

	// ErrCourierAtCapacity is returned when taking an order would exceed the
	// courier's max concurrent order capacity.
	ErrCourierAtCapacity = errors.New("courier is at max capacity")
)

// Courier is the aggregate the engine evaluates as an assignment candidate.
//
// Invariants:
//   - 0 <= activeOrderCount <= maxCapacity
//   - acceptanceRate is within [0, 1]
//   - activeOrderCount is mutated only by TakeOrder (inside the assignment
//     transaction) and by the external completion event
type Courier struct {
	id               kernel.UUID
	name             string
	active           bool
	position         kernel.GeoPoint
	online           bool
	available        bool
	activeOrderCount int
	maxCapacity      int
	acceptanceRate   float64
	avgDeliveryTime  int
	isConstructed    bool
}

// NewCourier creates a courier with an empty workload and default performance.
func NewCourier(id kernel.UUID, name string, position kernel.GeoPoint, maxCapacity int) (*Courier, error) {
	return RestoreCourier(id, name, true, position, true, true, 0, maxCapacity,
		DefaultAcceptanceRate, DefaultAvgDeliveryTime)
}

// RestoreCourier reconstructs a courier from persistence.
//
// Absent performance values must be substituted by the caller with
// DefaultAcceptanceRate / DefaultAvgDeliveryTime before calling; the
// constructor validates, it does not default.
func RestoreCourier(
	id kernel.UUID,
	name string,
	active bool,
	position kernel.GeoPoint,
	online bool,
	available bool,
	activeOrderCount int,
	maxCapacity int,
	acceptanceRate float64,
	avgDeliveryTime int,
) (*Courier, error) {
	c := &Courier{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPosition(position),
		c.setCapacity(activeOrderCount, maxCapacity),
		c.setPerformance(acceptanceRate, avgDeliveryTime),
	); err != nil {
		return nil, err
	}

	c.active = active
	c.online = online
	c.available = available
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier display name.
func (c *Courier) Name() string {
	return c.name
}

// IsActive reports whether the courier account is active.
func (c *Courier) IsActive() bool {
	return c.active
}

// Position returns the courier's last known position.
func (c *Courier) Position() kernel.GeoPoint {
	return c.position
}

// IsOnline reports whether the courier is currently connected.
func (c *Courier) IsOnline() bool {
	return c.online
}

// IsAvailable reports whether the courier accepts new offers.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// ActiveOrderCount returns the number of orders currently carried.
func (c *Courier) ActiveOrderCount() int {
	return c.activeOrderCount
}

// MaxCapacity returns the maximum number of concurrent orders.
func (c *Courier) MaxCapacity() int {
	return c.maxCapacity
}

// AcceptanceRate returns the historical offer acceptance rate in [0, 1].
func (c *Courier) AcceptanceRate() float64 {
	return c.acceptanceRate
}

// AvgDeliveryTime returns the historical average delivery time in minutes.
func (c *Courier) AvgDeliveryTime() int {
	return c.avgDeliveryTime
}

// IsEligible reports whether the courier passes the base candidate predicate:
// active, online, available and below capacity.
func (c *Courier) IsEligible() bool {
	return c.active && c.online && c.available && c.activeOrderCount < c.maxCapacity
}

// TakeOrder increments the courier's workload. Fails with ErrCourierAtCapacity
// when the courier is full; the capacity invariant never breaks in memory.
// Persistent enforcement happens in the assignment transaction with a guarded
// update, this method keeps the in-memory aggregate consistent with it.
func (c *Courier) TakeOrder() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.activeOrderCount >= c.maxCapacity {
		return ErrCourierAtCapacity
	}

	c.activeOrderCount++
	return nil
}

// CompleteOrder decrements the courier's workload after an external delivery
// completion event.
func (c *Courier) CompleteOrder() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.activeOrderCount == 0 {
		return errs.NewValueIsOutOfRangeError("activeOrderCount", -1, 0, c.maxCapacity)
	}

	c.activeOrderCount--
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}

func (c *Courier) setCapacity(activeOrderCount, maxCapacity int) error {
	if maxCapacity <= 0 {
		return errs.NewValueIsRequiredError("maxCapacity")
	}
	if activeOrderCount < 0 || activeOrderCount > maxCapacity {
		return errs.NewValueIsOutOfRangeError("activeOrderCount", activeOrderCount, 0, maxCapacity)
	}

	c.activeOrderCount = activeOrderCount
	c.maxCapacity = maxCapacity
	return nil
}

func (c *Courier) setPerformance(acceptanceRate float64, avgDeliveryTime int) error {
	if acceptanceRate < 0 || acceptanceRate > 1 {
		return errs.NewValueIsOutOfRangeError("acceptanceRate", acceptanceRate, 0, 1)
	}
	if avgDeliveryTime < 0 {
		return errs.NewValueIsRequiredError("avgDeliveryTime")
	}

	c.acceptanceRate = acceptanceRate
	c.avgDeliveryTime = avgDeliveryTime
	return nil
}
