package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GeocodeFailurePolicy decides what happens to an order whose address could
// not be geocoded. The policy is fixed per process so a whole pass behaves
// consistently.
type GeocodeFailurePolicy string

const (
	// GeocodeSkip leaves the order pending for the next pass.
	GeocodeSkip GeocodeFailurePolicy = "skip"

	// GeocodeFallback substitutes the configured default drop location.
	GeocodeFallback GeocodeFailurePolicy = "fallback"
)

// Validate checks that the policy holds one of the defined values.
func (p GeocodeFailurePolicy) Validate() error {
	switch p {
	case GeocodeSkip, GeocodeFallback:
		return nil
	default:
		return errs.NewValueIsInvalidError("geocode failure policy")
	}
}

// AssignedOrderDetail is the per-order summary row of a successful
// assignment, shaped for the pass report.
type AssignedOrderDetail struct {
	OrderID        string `json:"order_id"`
	UserName       string `json:"user_name"`
	ZoneTitle      string `json:"zone_title,omitempty"`
	CourierName    string `json:"courier_name"`
	DistanceText   string `json:"distance_text,omitempty"`
	ETAText        string `json:"eta_text,omitempty"`
	DirectionsLink string `json:"directions_link,omitempty"`
}

// BatchResult summarizes one assignment pass. Per-order failures never cross
// this boundary; they are logged, counted and left for the next pass.
type BatchResult struct {
	Assigned    int                   `json:"assigned"`
	NotAssigned int                   `json:"not_assigned"`
	Details     []AssignedOrderDetail `json:"details,omitempty"`
}

// ProcessOrderBatchCommandHandler runs one assignment pass: geocode each
// pending order, resolve its service zone, rank the eligible couriers and
// negotiate the order down the ranked list, committing the winner inside a
// single transaction.
//
// The handler is deliberately resilient per order: an order that cannot be
// geocoded, matched or committed stays pending and is retried on the next
// scan, without affecting the rest of the batch.
type ProcessOrderBatchCommandHandler struct {
	uowFactory    AssignmentUoWFactory
	orders        ports.OrderRepository
	zones         ports.ZoneRepository
	couriers      ports.CourierRepository
	notifications ports.NotificationRepository
	geocoder      ports.Geocoder
	planner       ports.RoutePlanner

	resolver services.ZoneResolver
	scoring  *services.ScoringEngine
	cascade  *services.OfferCascade

	geocodePolicy   GeocodeFailurePolicy
	defaultLocation kernel.GeoPoint

	now    func() time.Time
	logger *slog.Logger
}

// NewProcessOrderBatchCommandHandler wires the batch pass. defaultLocation is
// only consulted under GeocodeFallback and may be the zero value otherwise.
func NewProcessOrderBatchCommandHandler(
	uowFactory AssignmentUoWFactory,
	orders ports.OrderRepository,
	zones ports.ZoneRepository,
	couriers ports.CourierRepository,
	notifications ports.NotificationRepository,
	geocoder ports.Geocoder,
	planner ports.RoutePlanner,
	scoring *services.ScoringEngine,
	cascade *services.OfferCascade,
	geocodePolicy GeocodeFailurePolicy,
	defaultLocation kernel.GeoPoint,
	logger *slog.Logger,
) (*ProcessOrderBatchCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	if zones == nil {
		return nil, errs.NewValueIsRequiredError("zones")
	}
	if couriers == nil {
		return nil, errs.NewValueIsRequiredError("couriers")
	}
	if notifications == nil {
		return nil, errs.NewValueIsRequiredError("notifications")
	}
	if geocoder == nil {
		return nil, errs.NewValueIsRequiredError("geocoder")
	}
	if planner == nil {
		return nil, errs.NewValueIsRequiredError("planner")
	}
	if scoring == nil {
		return nil, errs.NewValueIsRequiredError("scoring")
	}
	if cascade == nil {
		return nil, errs.NewValueIsRequiredError("cascade")
	}
	if err := geocodePolicy.Validate(); err != nil {
		return nil, err
	}
	if geocodePolicy == GeocodeFallback {
		if err := defaultLocation.Validate(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &ProcessOrderBatchCommandHandler{
		uowFactory:      uowFactory,
		orders:          orders,
		zones:           zones,
		couriers:        couriers,
		notifications:   notifications,
		geocoder:        geocoder,
		planner:         planner,
		resolver:        services.NewZoneResolver(),
		scoring:         scoring,
		cascade:         cascade,
		geocodePolicy:   geocodePolicy,
		defaultLocation: defaultLocation,
		now:             time.Now,
		logger:          logger.With("component", "process_order_batch"),
	}, nil
}

// Handle runs the pass for the command's intake source. Only infrastructure
// failures that make the whole pass impossible (loading zones or the pending
// backlog) return an error; everything order-scoped is absorbed into the
// result counts.
func (h *ProcessOrderBatchCommandHandler) Handle(ctx context.Context, cmd ProcessOrderBatchCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	zones, err := h.zones.GetAllActive(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	pending, err := h.orders.GetAllPending(ctx, cmd.Source())
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{}
	for _, ord := range pending {
		detail, err := h.processOrder(ctx, zones, ord)
		if err != nil {
			h.logger.Error("order pass failed, order stays pending",
				"order_id", ord.ID(), "source", cmd.Source(), "error", err)
			result.NotAssigned++
			continue
		}
		if detail == nil {
			result.NotAssigned++
			continue
		}

		result.Assigned++
		result.Details = append(result.Details, *detail)
	}

	h.logger.Info("assignment pass finished",
		"source", cmd.Source(),
		"assigned", result.Assigned,
		"not_assigned", result.NotAssigned)

	return result, nil
}

// processOrder runs the full pipeline for one order. A nil detail with a nil
// error means the order legitimately stays pending this pass (geocode skip,
// out-of-service-area drop, no candidates, cascade exhausted).
func (h *ProcessOrderBatchCommandHandler) processOrder(ctx context.Context, zones []*zone.Zone, ord *order.Order) (*AssignedOrderDetail, error) {
	drop, ok, err := h.locateOrder(ctx, ord)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	matched, ok, err := h.resolver.Resolve(drop, zones)
	if err != nil {
		return nil, err
	}
	if !ok {
		h.logger.Info("drop point outside every service zone, order stays pending",
			"order_id", ord.ID())
		return nil, nil
	}

	meta, candidates, err := h.findCandidates(ctx, matched)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		h.logger.Info("no eligible couriers, order stays pending", "order_id", ord.ID())
		return nil, nil
	}

	ranking, err := h.scoring.Rank(ctx, drop, meta, candidates)
	if err != nil {
		return nil, err
	}

	outcome, err := h.cascade.Run(ctx, ord, ranking)
	if err != nil {
		return nil, err
	}
	if outcome.Winner == nil {
		h.logger.Info("every candidate declined, order stays pending", "order_id", ord.ID())
		return nil, nil
	}

	zoneID := matched.ID()
	if err = h.commitAssignment(ctx, ord, outcome, &zoneID); err != nil {
		return nil, err
	}

	h.notifyUser(ctx, ord)
	h.logger.Info("order assigned",
		"order_id", ord.ID(),
		"courier_id", outcome.Winner.Courier.ID(),
		"zone", matched.Title(),
		"score", outcome.Winner.Score,
		"preparation_minutes", ord.PreparationTimeMinutes())

	return &AssignedOrderDetail{
		OrderID:        ord.ID().String(),
		UserName:       ord.UserName(),
		ZoneTitle:      matched.Title(),
		CourierName:    outcome.Winner.Courier.Name(),
		DistanceText:   outcome.Winner.DistanceText,
		ETAText:        outcome.Winner.DurationText,
		DirectionsLink: h.planner.DirectionsLink(outcome.Winner.Courier.Position(), drop),
	}, nil
}

// locateOrder geocodes the drop address. ok=false means the order is skipped
// this pass per the configured policy.
func (h *ProcessOrderBatchCommandHandler) locateOrder(ctx context.Context, ord *order.Order) (kernel.GeoPoint, bool, error) {
	drop, err := h.geocoder.Geocode(ctx, ord.FullAddress())
	if err == nil {
		return drop, true, nil
	}

	if h.geocodePolicy == GeocodeFallback {
		h.logger.Warn("geocoding failed, using default drop location",
			"order_id", ord.ID(), "error", err)
		return h.defaultLocation, true, nil
	}

	h.logger.Warn("geocoding failed, order stays pending",
		"order_id", ord.ID(), "error", err)
	return kernel.GeoPoint{}, false, nil
}

// findCandidates loads the eligible couriers for the resolved zone. An empty
// zone-restricted pool widens to the city-wide pool rather than failing the
// order; the zone itself stays on the assignment.
func (h *ProcessOrderBatchCommandHandler) findCandidates(
	ctx context.Context,
	matched *zone.Zone,
) (*zone.Meta, []*courier.Courier, error) {
	meta := h.loadMeta(ctx, matched.ID())

	candidates, err := h.couriers.GetAvailableInZone(ctx, matched.ID())
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		h.logger.Info("zone has no eligible couriers, widening city-wide",
			"zone", matched.Title())
		candidates, err = h.couriers.GetAllAvailable(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	return meta, candidates, nil
}

// loadMeta fetches the zone delivery settings; a missing settings row only
// disables the ETA window for this order.
func (h *ProcessOrderBatchCommandHandler) loadMeta(ctx context.Context, zoneID kernel.UUID) *zone.Meta {
	meta, err := h.zones.GetMeta(ctx, zoneID)
	if err != nil {
		h.logger.Warn("zone settings unavailable", "zone_id", zoneID, "error", err)
		return nil
	}
	return meta
}

// commitAssignment runs the four-step assignment transaction. Any failure
// rolls the whole set back and the order remains pending.
func (h *ProcessOrderBatchCommandHandler) commitAssignment(
	ctx context.Context,
	ord *order.Order,
	outcome services.OfferOutcome,
	zoneID *kernel.UUID,
) error {
	winner := outcome.Winner.Courier

	if err := ord.Assign(winner.ID(), zoneID); err != nil {
		return err
	}
	if err := winner.TakeOrder(); err != nil {
		return err
	}
	if err := outcome.Offer.Accept(); err != nil {
		return err
	}

	delivery, err := assignment.NewDelivery(ord.ID(), winner.ID(), zoneID, h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err = uow.CourierRepository().ReserveCapacity(ctx, winner.ID()); err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Update(ctx, outcome.Offer); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Add(ctx, delivery); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// notifyUser records the "order assigned" message for the requesting user.
// Best effort: a failed write is logged, the assignment stands.
func (h *ProcessOrderBatchCommandHandler) notifyUser(ctx context.Context, ord *order.Order) {
	notification, err := assignment.NewAssignedNotification(ord.UserID(), ord.ID(), ord.UserName(), h.now())
	if err != nil {
		h.logger.Error("user notification construction failed",
			"order_id", ord.ID(), "error", err)
		return
	}
	if err = h.notifications.Add(ctx, notification); err != nil {
		h.logger.Warn("user notification write failed",
			"order_id", ord.ID(), "error", err)
	}
}
