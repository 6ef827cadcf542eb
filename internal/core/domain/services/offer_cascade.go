package services

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// OfferOutcome reports how the cascade ended for one order.
type OfferOutcome struct {
	// Winner is the accepting candidate, nil when every candidate was
	// exhausted and the order stays pending for the next pass.
	Winner *CandidateScore

	// Offer is the winner's offer record, still pending; the assignment
	// transaction moves it to accepted so the terminal status commits
	// together with the order flip.
	Offer *assignment.Assignment
}

// OfferCascade walks a ranked candidate list offering the order to one
// courier at a time until somebody accepts or the list runs out.
//
// Every candidate that drops out leaves an audit record: pre-ranking
// exclusions and courier declines as Rejections, losing candidates that were
// never offered as low-score Rejections. Offer records and courier
// notifications are written as each offer goes out. Rejection and
// notification writes are fire-and-forget: a failed insert is logged and the
// cascade moves on.
type OfferCascade struct {
	responder     ports.CourierResponder
	assignments   ports.AssignmentRepository
	rejections    ports.RejectionRepository
	notifications ports.NotificationRepository
	now           func() time.Time
	logger        *slog.Logger
}

// NewOfferCascade creates a cascade wired to the given responder and ledgers.
func NewOfferCascade(
	responder ports.CourierResponder,
	assignments ports.AssignmentRepository,
	rejections ports.RejectionRepository,
	notifications ports.NotificationRepository,
	logger *slog.Logger,
) (*OfferCascade, error) {
	if responder == nil {
		return nil, errs.NewValueIsRequiredError("responder")
	}
	if assignments == nil {
		return nil, errs.NewValueIsRequiredError("assignments")
	}
	if rejections == nil {
		return nil, errs.NewValueIsRequiredError("rejections")
	}
	if notifications == nil {
		return nil, errs.NewValueIsRequiredError("notifications")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &OfferCascade{
		responder:     responder,
		assignments:   assignments,
		rejections:    rejections,
		notifications: notifications,
		now:           time.Now,
		logger:        logger.With("component", "offer_cascade"),
	}, nil
}

// Run offers the order down the ranked list. The pre-ranking exclusions are
// recorded first, then candidates are offered best first. Returns a nil
// Winner when nobody accepted; the caller leaves the order pending.
func (c *OfferCascade) Run(ctx context.Context, ord *order.Order, ranking Ranking) (OfferOutcome, error) {
	if err := ord.Validate(); err != nil {
		return OfferOutcome{}, err
	}

	for _, excl := range ranking.Excluded {
		c.recordRejection(ctx, ord, excl.Courier.ID(), excl.Reason)
	}

	for i := range ranking.Candidates {
		cand := &ranking.Candidates[i]

		offer, err := c.makeOffer(ctx, ord, cand)
		if err != nil {
			return OfferOutcome{}, err
		}

		accepted := c.awaitResponse(ctx, ord, cand, offer)
		if !accepted {
			continue
		}

		c.recordLowScoreLosers(ctx, ord, ranking.Candidates[i+1:])
		return OfferOutcome{Winner: cand, Offer: offer}, nil
	}

	return OfferOutcome{}, nil
}

// makeOffer appends the pending offer record and notifies the courier.
func (c *OfferCascade) makeOffer(ctx context.Context, ord *order.Order, cand *CandidateScore) (*assignment.Assignment, error) {
	offer, err := assignment.NewAssignment(ord.ID(), cand.Courier.ID(), cand.Score, c.now())
	if err != nil {
		return nil, err
	}
	if err = c.assignments.Add(ctx, offer); err != nil {
		return nil, err
	}

	notification, err := assignment.NewOfferNotification(cand.Courier.ID(), ord.ID(), c.now())
	if err != nil {
		return nil, err
	}
	if err = c.notifications.Add(ctx, notification); err != nil {
		c.logger.Warn("offer notification write failed",
			"order_id", ord.ID(), "courier_id", cand.Courier.ID(), "error", err)
	}
	if err = c.notifications.AddCourierFeed(ctx, notification); err != nil {
		c.logger.Warn("courier feed write failed",
			"order_id", ord.ID(), "courier_id", cand.Courier.ID(), "error", err)
	}

	return offer, nil
}

// awaitResponse asks the responder for the courier's decision and settles
// the offer record when the courier does not take the order.
func (c *OfferCascade) awaitResponse(ctx context.Context, ord *order.Order, cand *CandidateScore, offer *assignment.Assignment) bool {
	response, err := c.responder.Respond(ctx, cand.Courier.ID(), ord.ID())
	if err != nil {
		c.logger.Warn("courier unreachable, moving to next candidate",
			"order_id", ord.ID(), "courier_id", cand.Courier.ID(), "error", err)
		c.settleRejectedOffer(ctx, ord, offer)
		return false
	}

	if response != ports.OfferAccepted {
		c.settleRejectedOffer(ctx, ord, offer)
		c.recordRejection(ctx, ord, cand.Courier.ID(), assignment.ReasonRejectedByCourier)
		return false
	}

	return true
}

func (c *OfferCascade) settleRejectedOffer(ctx context.Context, ord *order.Order, offer *assignment.Assignment) {
	if err := offer.Reject(); err != nil {
		c.logger.Error("offer record transition failed",
			"order_id", ord.ID(), "courier_id", offer.CourierID(), "error", err)
		return
	}
	if err := c.assignments.Update(ctx, offer); err != nil {
		c.logger.Warn("offer record update failed",
			"order_id", ord.ID(), "courier_id", offer.CourierID(), "error", err)
	}
}

func (c *OfferCascade) recordLowScoreLosers(ctx context.Context, ord *order.Order, losers []CandidateScore) {
	for _, loser := range losers {
		c.recordRejection(ctx, ord, loser.Courier.ID(), assignment.ReasonLowScore)
	}
}

func (c *OfferCascade) recordRejection(ctx context.Context, ord *order.Order, courierID kernel.UUID, reason assignment.RejectionReason) {
	rejection, err := assignment.NewRejection(ord.ID(), courierID, reason, c.now())
	if err != nil {
		c.logger.Error("rejection record construction failed",
			"order_id", ord.ID(), "courier_id", courierID, "error", err)
		return
	}
	if err = c.rejections.Add(ctx, rejection); err != nil {
		c.logger.Warn("rejection write failed",
			"order_id", ord.ID(), "courier_id", courierID, "reason", reason, "error", err)
	}
}
