package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrRouteUnavailable is returned by RoutePlanner implementations when no
// road route could be produced between the two points.
var ErrRouteUnavailable = errors.New("route could not be computed")

// RouteEstimate is a road-network travel estimate between two points.
type RouteEstimate struct {
	DistanceKm      float64
	DurationMinutes float64

	// Provider-formatted display strings ("4.2 km", "12 mins").
	DistanceText string
	DurationText string
}

// RoutePlanner estimates road travel between a courier and a drop point.
// Scoring degrades to straight-line distance when the planner fails, so
// implementations should return ErrRouteUnavailable rather than inventing
// estimates.
type RoutePlanner interface {
	EstimateRoute(ctx context.Context, origin, destination kernel.GeoPoint) (RouteEstimate, error)

	// DirectionsLink builds a shareable turn-by-turn navigation URL
	// between the two points.
	DirectionsLink(origin, destination kernel.GeoPoint) string
}
