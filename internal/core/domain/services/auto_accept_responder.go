package services

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// AutoAcceptResponder answers every offer with an acceptance on the courier's
// behalf. This is the immediate-assign mode: the best-ranked candidate gets
// the order without a round trip, keeping the batch pass deterministic and
// free of wall-clock waits.
type AutoAcceptResponder struct{}

// NewAutoAcceptResponder creates the immediate-assign responder.
func NewAutoAcceptResponder() AutoAcceptResponder {
	return AutoAcceptResponder{}
}

// Respond always accepts.
func (AutoAcceptResponder) Respond(_ context.Context, _, _ kernel.UUID) (ports.OfferResponse, error) {
	return ports.OfferAccepted, nil
}
