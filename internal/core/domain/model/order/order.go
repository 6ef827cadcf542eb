// Package order contains the order aggregate managed by the assignment engine.
package order

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAddressIsEmpty is returned for orders whose delivery address is blank.
	// Such orders cannot be geocoded and are excluded from the pass.
	ErrAddressIsEmpty = errs.NewValueIsRequiredError("address")
)

// Order is the aggregate root the batch pass walks. It carries the delivery
// address (geocoded externally), the requesting user, the item list used for
// the preparation-time summary, and the assignment outcome.
//
// order_status transitions Pending -> Assigned exactly once, only inside the
// assignment transaction. No other component writes the status.
type Order struct {
	id            kernel.UUID
	address       string
	landmark      string
	userID        kernel.UUID
	userName      string
	items         []string
	status        Status
	courierID     *kernel.UUID
	zoneID        *kernel.UUID
	isConstructed bool
}

// NewOrder creates a pending, unassigned order.
func NewOrder(id kernel.UUID, address, landmark string, userID kernel.UUID, userName string, items []string) (*Order, error) {
	return RestoreOrder(id, address, landmark, userID, userName, items, Pending, nil, nil)
}

// RestoreOrder reconstructs an order from persistence, including assignment
// state for already-handled rows.
func RestoreOrder(
	id kernel.UUID,
	address, landmark string,
	userID kernel.UUID,
	userName string,
	items []string,
	status Status,
	courierID *kernel.UUID,
	zoneID *kernel.UUID,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setAddress(address),
		o.setUser(userID, userName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if zoneID != nil {
		if err := zoneID.Validate(); err != nil {
			return nil, err
		}
	}

	o.landmark = strings.TrimSpace(landmark)
	o.items = append([]string(nil), items...)
	o.status = status
	o.courierID = courierID
	o.zoneID = zoneID
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// Landmark returns the optional address landmark.
func (o *Order) Landmark() string {
	return o.landmark
}

// FullAddress joins address and landmark for geocoding.
func (o *Order) FullAddress() string {
	if o.landmark == "" {
		return o.address
	}
	return o.address + ", " + o.landmark
}

// UserID returns the requesting user's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// UserName returns the requesting user's display name.
func (o *Order) UserName() string {
	return o.userName
}

// Items returns the ordered item titles.
func (o *Order) Items() []string {
	return append([]string(nil), o.items...)
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier id, nil while pending.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Zone returns the zone resolved at assignment time, nil while pending or
// when the order was assigned through the city-wide fallback with no zone.
func (o *Order) Zone() *kernel.UUID {
	return o.zoneID
}

// PreparationTimeMinutes estimates kitchen preparation time from the item
// list: a flat ten minutes per item.
func (o *Order) PreparationTimeMinutes() int {
	total := 0
	for _, item := range o.items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		total += 10
	}
	return total
}

// Assign marks the order assigned to a courier, recording the zone it was
// resolved into. zoneID may be nil when the order was matched city-wide
// outside any active zone.
//
// Returns an error if the order already left Pending; callers treat that as
// a double-processing signal, not a state to repair.
func (o *Order) Assign(courierID kernel.UUID, zoneID *kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if zoneID != nil {
		if err := zoneID.Validate(); err != nil {
			return err
		}
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.zoneID = zoneID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsEmpty
	}
	o.address = strings.Join(strings.Fields(address), " ")
	return nil
}

func (o *Order) setUser(userID kernel.UUID, userName string) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if userName == "" {
		return errs.NewValueIsRequiredError("userName")
	}

	o.userID = userID
	o.userName = userName
	return nil
}
