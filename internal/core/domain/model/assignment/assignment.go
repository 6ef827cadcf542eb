// Package assignment contains the append-only records the engine writes while
// negotiating an order with couriers: offers, rejections and notifications.
package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Status of a single offer made to a courier.
//
//	StatusPending ──> {StatusAccepted, StatusRejected}
//
// Records are append-only history; a record never changes after reaching a
// terminal status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Validate checks that the Status holds one of the defined values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return nil
	default:
		return errs.NewValueIsInvalidError("assignment status")
	}
}

// ErrAssignmentIsNotConstructed is returned when an Assignment was not created
// through NewAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// ErrAssignmentIsTerminal is returned when trying to move an assignment out of
// an already-terminal status.
var ErrAssignmentIsTerminal = errors.New("assignment already reached a terminal status")

// Assignment records one offer of an order to one courier, with the score the
// courier was ranked by at offer time.
type Assignment struct {
	orderID       kernel.UUID
	courierID     kernel.UUID
	score         float64
	status        Status
	assignedAt    time.Time
	isConstructed bool
}

// NewAssignment creates a pending offer record.
func NewAssignment(orderID, courierID kernel.UUID, score float64, assignedAt time.Time) (*Assignment, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &Assignment{
		orderID:       orderID,
		courierID:     courierID,
		score:         score,
		status:        StatusPending,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an assignment record from persistence.
func RestoreAssignment(orderID, courierID kernel.UUID, score float64, status Status, assignedAt time.Time) (*Assignment, error) {
	a, err := NewAssignment(orderID, courierID, score, assignedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	a.status = status
	return a, nil
}

// Validate ensures the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// OrderID returns the offered order's id.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the courier the offer was made to.
func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

// Score returns the ranking score at offer time.
func (a *Assignment) Score() float64 {
	return a.score
}

// Status returns the offer status.
func (a *Assignment) Status() Status {
	return a.status
}

// AssignedAt returns the offer timestamp.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Accept moves a pending offer to accepted.
func (a *Assignment) Accept() error {
	return a.complete(StatusAccepted)
}

// Reject moves a pending offer to rejected.
func (a *Assignment) Reject() error {
	return a.complete(StatusRejected)
}

func (a *Assignment) complete(terminal Status) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != StatusPending {
		return ErrAssignmentIsTerminal
	}

	a.status = terminal
	return nil
}
