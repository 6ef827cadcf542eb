package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoutePlanner struct{ mock.Mock }

func (m *MockRoutePlanner) EstimateRoute(ctx context.Context, origin, destination kernel.GeoPoint) (ports.RouteEstimate, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(ports.RouteEstimate), args.Error(1)
}

func (m *MockRoutePlanner) DirectionsLink(origin, destination kernel.GeoPoint) string {
	args := m.Called(origin, destination)
	return args.String(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustCourier(t *testing.T, name string, lat, lng, acceptanceRate float64, avgDeliveryTime int) *courier.Courier {
	t.Helper()

	position, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	c, err := courier.RestoreCourier(kernel.NewUUID(), name, true, position,
		true, true, 0, 3, acceptanceRate, avgDeliveryTime)
	require.NoError(t, err)
	return c
}

func TestScoringEngine_Rank_WeightedMode(t *testing.T) {
	ctx := context.Background()
	destination := mustPoint(t, 18.615, 73.745)

	t.Run("closer courier wins with equal history", func(t *testing.T) {
		near := mustCourier(t, "Near", 18.62, 73.75, 0.5, 30)
		far := mustCourier(t, "Far", 18.70, 73.85, 0.5, 30)

		planner := new(MockRoutePlanner)
		planner.On("EstimateRoute", ctx, near.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 1.2, DurationMinutes: 6, DistanceText: "1.2 km", DurationText: "6 mins"}, nil)
		planner.On("EstimateRoute", ctx, far.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 14.8, DurationMinutes: 35, DistanceText: "14.8 km", DurationText: "35 mins"}, nil)

		engine, err := services.NewScoringEngine(planner, services.ScoringModeWeighted, false, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{far, near})
		require.NoError(t, err)
		require.Len(t, ranking.Candidates, 2)
		assert.True(t, ranking.Candidates[0].Courier.IsEqual(near))
		assert.Greater(t, ranking.Candidates[0].Score, ranking.Candidates[1].Score)
	})

	t.Run("acceptance rate outweighs proximity", func(t *testing.T) {
		reliable := mustCourier(t, "Reliable", 18.70, 73.85, 0.9, 30)
		flaky := mustCourier(t, "Flaky", 18.62, 73.75, 0.0, 30)

		planner := new(MockRoutePlanner)
		planner.On("EstimateRoute", ctx, reliable.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 10, DurationMinutes: 25}, nil)
		planner.On("EstimateRoute", ctx, flaky.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 1, DurationMinutes: 5}, nil)

		engine, err := services.NewScoringEngine(planner, services.ScoringModeWeighted, false, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{flaky, reliable})
		require.NoError(t, err)
		require.Len(t, ranking.Candidates, 2)
		assert.True(t, ranking.Candidates[0].Courier.IsEqual(reliable))
	})

	t.Run("exact ties keep evaluation order", func(t *testing.T) {
		first := mustCourier(t, "First", 18.62, 73.75, 0.5, 30)
		second := mustCourier(t, "Second", 18.62, 73.75, 0.5, 30)

		planner := new(MockRoutePlanner)
		planner.On("EstimateRoute", ctx, mock.Anything, mock.Anything).
			Return(ports.RouteEstimate{DistanceKm: 2, DurationMinutes: 8}, nil)

		engine, err := services.NewScoringEngine(planner, services.ScoringModeWeighted, false, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{first, second})
		require.NoError(t, err)
		require.Len(t, ranking.Candidates, 2)
		assert.True(t, ranking.Candidates[0].Courier.IsEqual(first))
		assert.Equal(t, ranking.Candidates[0].Score, ranking.Candidates[1].Score)
	})
}

func TestScoringEngine_Rank_DistanceMode(t *testing.T) {
	ctx := context.Background()
	destination := mustPoint(t, 18.615, 73.745)

	// In distance mode a strong acceptance history must not help.
	reliable := mustCourier(t, "Reliable", 18.70, 73.85, 1.0, 10)
	near := mustCourier(t, "Near", 18.62, 73.75, 0.0, 60)

	planner := new(MockRoutePlanner)
	planner.On("EstimateRoute", ctx, reliable.Position(), destination).
		Return(ports.RouteEstimate{DistanceKm: 10, DurationMinutes: 25}, nil)
	planner.On("EstimateRoute", ctx, near.Position(), destination).
		Return(ports.RouteEstimate{DistanceKm: 1, DurationMinutes: 5}, nil)

	engine, err := services.NewScoringEngine(planner, services.ScoringModeDistance, false, discardLogger())
	require.NoError(t, err)

	ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{reliable, near})
	require.NoError(t, err)
	require.Len(t, ranking.Candidates, 2)
	assert.True(t, ranking.Candidates[0].Courier.IsEqual(near))
	assert.InDelta(t, 1.0/(1.0+1e-6), ranking.Candidates[0].Score, 1e-9)
}

func TestScoringEngine_Rank_RoutingFallback(t *testing.T) {
	ctx := context.Background()
	destination := mustPoint(t, 18.615, 73.745)
	c := mustCourier(t, "Lone", 18.62, 73.75, 0.5, 30)

	planner := new(MockRoutePlanner)
	planner.On("EstimateRoute", ctx, mock.Anything, mock.Anything).
		Return(ports.RouteEstimate{}, ports.ErrRouteUnavailable)

	engine, err := services.NewScoringEngine(planner, services.ScoringModeWeighted, false, discardLogger())
	require.NoError(t, err)

	ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{c})
	require.NoError(t, err)
	require.Len(t, ranking.Candidates, 1)

	cand := ranking.Candidates[0]
	assert.False(t, cand.HasDuration)
	assert.Greater(t, cand.DistanceKm, 0.0)
	assert.Contains(t, cand.DistanceText, "km")
	assert.Empty(t, ranking.Excluded)
}

func TestScoringEngine_Rank_ETAGate(t *testing.T) {
	ctx := context.Background()
	destination := mustPoint(t, 18.615, 73.745)

	zoneID := kernel.NewUUID()
	meta, err := zone.NewMeta(zoneID, 25, 100, 10, 60, true)
	require.NoError(t, err)

	slow := mustCourier(t, "Slow", 18.70, 73.85, 0.5, 30)
	fast := mustCourier(t, "Fast", 18.62, 73.75, 0.5, 30)

	newPlanner := func() *MockRoutePlanner {
		planner := new(MockRoutePlanner)
		planner.On("EstimateRoute", ctx, slow.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 20, DurationMinutes: 90}, nil)
		planner.On("EstimateRoute", ctx, fast.Position(), destination).
			Return(ports.RouteEstimate{DistanceKm: 2, DurationMinutes: 12}, nil)
		return planner
	}

	t.Run("gate on excludes out-of-window candidates", func(t *testing.T) {
		engine, err := services.NewScoringEngine(newPlanner(), services.ScoringModeWeighted, true, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, meta, []*courier.Courier{slow, fast})
		require.NoError(t, err)
		require.Len(t, ranking.Candidates, 1)
		assert.True(t, ranking.Candidates[0].Courier.IsEqual(fast))

		require.Len(t, ranking.Excluded, 1)
		assert.True(t, ranking.Excluded[0].Courier.IsEqual(slow))
		assert.Equal(t, assignment.ReasonETAInvalid, ranking.Excluded[0].Reason)
	})

	t.Run("gate off keeps every candidate", func(t *testing.T) {
		engine, err := services.NewScoringEngine(newPlanner(), services.ScoringModeWeighted, false, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, meta, []*courier.Courier{slow, fast})
		require.NoError(t, err)
		assert.Len(t, ranking.Candidates, 2)
		assert.Empty(t, ranking.Excluded)
	})

	t.Run("gate needs a window, city-wide matches pass", func(t *testing.T) {
		engine, err := services.NewScoringEngine(newPlanner(), services.ScoringModeWeighted, true, discardLogger())
		require.NoError(t, err)

		ranking, err := engine.Rank(ctx, destination, nil, []*courier.Courier{slow, fast})
		require.NoError(t, err)
		assert.Len(t, ranking.Candidates, 2)
	})
}

func TestNewScoringEngine_Validation(t *testing.T) {
	planner := new(MockRoutePlanner)

	_, err := services.NewScoringEngine(nil, services.ScoringModeWeighted, false, discardLogger())
	require.Error(t, err)

	_, err = services.NewScoringEngine(planner, services.ScoringMode("random"), false, discardLogger())
	require.Error(t, err)

	_, err = services.NewScoringEngine(planner, services.ScoringModeDistance, false, nil)
	require.Error(t, err)
}
