package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// OfferResponse is a courier's answer to an offered order.
type OfferResponse int

const (
	// OfferAccepted: the courier takes the order.
	OfferAccepted OfferResponse = iota

	// OfferRejected: the courier declined; the cascade moves on.
	OfferRejected
)

// CourierResponder obtains a courier's decision on an offered order. The
// default wiring answers on the courier's behalf (best candidate accepts
// immediately); an interactive implementation would push the offer out and
// wait for the reply.
type CourierResponder interface {
	// Respond returns the courier's decision for the offer. An error means
	// the courier could not be reached; the cascade treats that the same
	// as a rejection but records no courier decision.
	Respond(ctx context.Context, courierID, orderID kernel.UUID) (OfferResponse, error)
}
