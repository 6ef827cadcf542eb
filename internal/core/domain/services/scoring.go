package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ScoringMode selects the ranking formula. The mode is fixed per process;
// candidates inside one pass are never ranked by mixed formulas.
type ScoringMode string

const (
	// ScoringModeWeighted blends acceptance rate, proximity and historical
	// delivery speed.
	ScoringModeWeighted ScoringMode = "weighted"

	// ScoringModeDistance ranks by proximity alone.
	ScoringModeDistance ScoringMode = "distance"
)

// Validate checks that the mode holds one of the defined values.
func (m ScoringMode) Validate() error {
	switch m {
	case ScoringModeWeighted, ScoringModeDistance:
		return nil
	default:
		return errs.NewValueIsInvalidError("scoring mode")
	}
}

// distanceEpsilon keeps the distance-mode score finite for a courier standing
// on the drop point.
const distanceEpsilon = 1e-6

// CandidateScore is one courier's evaluation against an order destination.
type CandidateScore struct {
	Courier    *courier.Courier
	Score      float64
	DistanceKm float64

	// DurationMinutes is only meaningful when HasDuration is true; the
	// straight-line fallback produces a distance but no travel time.
	DurationMinutes float64
	HasDuration     bool

	DistanceText string
	DurationText string
}

// Exclusion is a candidate ruled out before any offer was made.
type Exclusion struct {
	Courier *courier.Courier
	Reason  assignment.RejectionReason
}

// Ranking is the scored candidate list for one order: candidates ordered best
// first, plus the candidates excluded before ranking.
type Ranking struct {
	Candidates []CandidateScore
	Excluded   []Exclusion
}

// ScoringEngine ranks eligible couriers against an order destination.
//
// Evaluation per candidate: ask the route planner for road distance and
// travel time; when the planner fails, fall back to great-circle distance
// with the travel time unknown. A known travel time outside the zone's
// delivery window excludes the candidate when ETA gating is on. The
// remaining candidates are scored by the configured mode and sorted
// descending; an exact score tie keeps the earlier-evaluated candidate.
type ScoringEngine struct {
	planner ports.RoutePlanner
	mode    ScoringMode
	etaGate bool
	logger  *slog.Logger
}

// NewScoringEngine creates a scoring engine with the given ranking mode.
// etaGate enables the delivery-window exclusion for candidates whose travel
// time is known.
func NewScoringEngine(planner ports.RoutePlanner, mode ScoringMode, etaGate bool, logger *slog.Logger) (*ScoringEngine, error) {
	if planner == nil {
		return nil, errs.NewValueIsRequiredError("planner")
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &ScoringEngine{
		planner: planner,
		mode:    mode,
		etaGate: etaGate,
		logger:  logger.With("component", "scoring"),
	}, nil
}

// Rank evaluates the candidates against the destination and returns them
// best first. meta carries the zone delivery window and may be nil for
// city-wide matches; without it the ETA gate has no window to check and is
// skipped.
func (e *ScoringEngine) Rank(
	ctx context.Context,
	destination kernel.GeoPoint,
	meta *zone.Meta,
	candidates []*courier.Courier,
) (Ranking, error) {
	if err := destination.Validate(); err != nil {
		return Ranking{}, err
	}

	var ranking Ranking
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return Ranking{}, err
		}

		if err := c.Position().Validate(); err != nil {
			ranking.Excluded = append(ranking.Excluded, Exclusion{
				Courier: c, Reason: assignment.ReasonBadLocation,
			})
			continue
		}

		score, excluded := e.evaluate(ctx, destination, meta, c)
		if excluded != nil {
			ranking.Excluded = append(ranking.Excluded, *excluded)
			continue
		}
		ranking.Candidates = append(ranking.Candidates, score)
	}

	// Stable sort with a strictly-greater comparison: equal scores keep
	// evaluation order.
	sort.SliceStable(ranking.Candidates, func(i, j int) bool {
		return ranking.Candidates[i].Score > ranking.Candidates[j].Score
	})

	return ranking, nil
}

func (e *ScoringEngine) evaluate(
	ctx context.Context,
	destination kernel.GeoPoint,
	meta *zone.Meta,
	c *courier.Courier,
) (CandidateScore, *Exclusion) {
	cand := CandidateScore{Courier: c}

	estimate, err := e.planner.EstimateRoute(ctx, c.Position(), destination)
	if err == nil {
		cand.DistanceKm = estimate.DistanceKm
		cand.DurationMinutes = estimate.DurationMinutes
		cand.HasDuration = true
		cand.DistanceText = estimate.DistanceText
		cand.DurationText = estimate.DurationText
	} else {
		e.logger.Warn("route estimate failed, using straight-line distance",
			"courier_id", c.ID(), "error", err)

		km, derr := c.Position().GreatCircleDistanceKm(destination)
		if derr != nil {
			return cand, &Exclusion{Courier: c, Reason: assignment.ReasonDistanceETAUnavailable}
		}
		cand.DistanceKm = km
		cand.DistanceText = fmt.Sprintf("%.1f km", km)
	}

	if e.etaGate && meta != nil && cand.HasDuration {
		eta := int(math.Round(cand.DurationMinutes))
		if !meta.ETAWithinWindow(eta) {
			return cand, &Exclusion{Courier: c, Reason: assignment.ReasonETAInvalid}
		}
	}

	cand.Score = e.score(cand)
	return cand, nil
}

func (e *ScoringEngine) score(cand CandidateScore) float64 {
	if e.mode == ScoringModeDistance {
		return 1.0 / (cand.DistanceKm + distanceEpsilon)
	}

	c := cand.Courier
	return 0.5*c.AcceptanceRate() +
		0.3*(1.0/(cand.DistanceKm+1.0)) +
		0.2*(1.0/(float64(c.AvgDeliveryTime())+1.0))
}
