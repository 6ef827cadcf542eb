package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RejectionReason classifies why a courier was ruled out for an order.
// The values are stored verbatim in the audit trail.
type RejectionReason string

const (
	// ReasonETAInvalid: the courier's ETA fell outside the zone delivery window.
	ReasonETAInvalid RejectionReason = "eta_invalid"

	// ReasonDistanceETAUnavailable: neither road distance nor the straight-line
	// fallback could be computed for the courier.
	ReasonDistanceETAUnavailable RejectionReason = "distance_eta_unavailable"

	// ReasonLowScore: the courier scored below the selected candidate.
	ReasonLowScore RejectionReason = "low_score"

	// ReasonBadLocation: the courier's stored position was unusable.
	ReasonBadLocation RejectionReason = "bad_location"

	// ReasonRejectedByCourier: the courier declined the offer.
	ReasonRejectedByCourier RejectionReason = "rejected_by_courier"
)

// Validate checks that the reason holds one of the defined values.
func (r RejectionReason) Validate() error {
	switch r {
	case ReasonETAInvalid, ReasonDistanceETAUnavailable, ReasonLowScore,
		ReasonBadLocation, ReasonRejectedByCourier:
		return nil
	default:
		return errs.NewValueIsInvalidError("rejection reason")
	}
}

// ErrRejectionIsNotConstructed is returned when a Rejection was not created
// through NewRejection.
var ErrRejectionIsNotConstructed = errors.New("Rejection must be created via NewRejection constructor")

// Rejection is an append-only audit record: courier X was ruled out for order
// Y for a classified reason.
type Rejection struct {
	orderID       kernel.UUID
	courierID     kernel.UUID
	reason        RejectionReason
	createdAt     time.Time
	isConstructed bool
}

// NewRejection creates a validated rejection record.
func NewRejection(orderID, courierID kernel.UUID, reason RejectionReason, createdAt time.Time) (*Rejection, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate(), reason.Validate()); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Rejection{
		orderID:       orderID,
		courierID:     courierID,
		reason:        reason,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Rejection was created through NewRejection.
func (r *Rejection) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRejectionIsNotConstructed
	}
	return nil
}

// OrderID returns the order the rejection belongs to.
func (r *Rejection) OrderID() kernel.UUID {
	return r.orderID
}

// CourierID returns the ruled-out courier.
func (r *Rejection) CourierID() kernel.UUID {
	return r.courierID
}

// Reason returns the classified rejection reason.
func (r *Rejection) Reason() RejectionReason {
	return r.reason
}

// CreatedAt returns the record timestamp.
func (r *Rejection) CreatedAt() time.Time {
	return r.createdAt
}
