package routing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

type MockDirectionsClient struct {
	mock.Mock
}

func (m *MockDirectionsClient) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsRoute, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DirectionsRoute), args.Error(1)
}

func setupRoutingServiceTest() (*ServiceImpl, *MockDirectionsClient) {
	client := new(MockDirectionsClient)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServiceImpl(client, logger), client
}

func testStops() []types.ItineraryStop {
	return []types.ItineraryStop{
		{PlaceName: "Gallery", Coordinates: types.Coordinates{Latitude: 34.05, Longitude: -118.24}},
		{PlaceName: "Park", Coordinates: types.Coordinates{Latitude: 34.07, Longitude: -118.26}},
		{PlaceName: "Pier", Coordinates: types.Coordinates{Latitude: 34.01, Longitude: -118.49}},
	}
}

func TestServiceImpl_ComputeRoute(t *testing.T) {
	ctx := context.Background()
	origin := types.Location{Latitude: 34.0522, Longitude: -118.2437, Address: "Downtown LA"}

	t.Run("last stop is the destination, earlier stops are optimizable waypoints", func(t *testing.T) {
		svc, client := setupRoutingServiceTest()
		stops := testStops()
		last := stops[len(stops)-1].Coordinates

		client.On("Directions", mock.Anything, mock.MatchedBy(func(req DirectionsRequest) bool {
			return req.Destination == last &&
				len(req.Waypoints) == 2 &&
				req.Waypoints[0] == stops[0].Coordinates &&
				req.Waypoints[1] == stops[1].Coordinates &&
				req.OptimizeWaypoints &&
				req.Mode == types.TravelModeDriving
		})).Return(&DirectionsRoute{
			Summary:         "I-10 W",
			Polyline:        "abc123",
			WaypointOrder:   []int{1, 0},
			DistanceMeters:  24000,
			DurationSeconds: 2100,
		}, nil).Once()

		route, err := svc.ComputeRoute(ctx, origin, stops, types.TravelModeDriving)
		require.NoError(t, err)
		assert.Equal(t, last, route.Destination)
		assert.Equal(t, []int{1, 0}, route.WaypointOrder)
		assert.Equal(t, "abc123", route.Polyline)
		assert.Equal(t, 24000, route.DistanceMeters)
		client.AssertExpectations(t)
	})

	t.Run("destination is preserved even when waypoints are reordered", func(t *testing.T) {
		// The routing collaborator may shuffle intermediates; it must never
		// promote one to the destination.
		svc, client := setupRoutingServiceTest()
		stops := testStops()

		client.On("Directions", mock.Anything, mock.Anything).
			Return(&DirectionsRoute{WaypointOrder: []int{1, 0}}, nil).Once()

		route, err := svc.ComputeRoute(ctx, origin, stops, types.TravelModeWalking)
		require.NoError(t, err)
		assert.Equal(t, stops[2].Coordinates, route.Destination)
		client.AssertExpectations(t)
	})

	t.Run("single stop routes with no waypoints", func(t *testing.T) {
		svc, client := setupRoutingServiceTest()
		stops := testStops()[:1]

		client.On("Directions", mock.Anything, mock.MatchedBy(func(req DirectionsRequest) bool {
			return req.Destination == stops[0].Coordinates && len(req.Waypoints) == 0
		})).Return(&DirectionsRoute{Polyline: "xyz"}, nil).Once()

		route, err := svc.ComputeRoute(ctx, origin, stops, types.TravelModeBicycling)
		require.NoError(t, err)
		assert.Equal(t, stops[0].Coordinates, route.Destination)
		client.AssertExpectations(t)
	})

	t.Run("client failure wraps ErrRoutingFailed", func(t *testing.T) {
		svc, client := setupRoutingServiceTest()
		client.On("Directions", mock.Anything, mock.Anything).
			Return(nil, errors.New("directions returned status OVER_QUERY_LIMIT")).Once()

		route, err := svc.ComputeRoute(ctx, origin, testStops(), types.TravelModeDriving)
		assert.ErrorIs(t, err, types.ErrRoutingFailed)
		assert.Nil(t, route)
		client.AssertExpectations(t)
	})

	t.Run("empty stop list is rejected without a client call", func(t *testing.T) {
		svc, client := setupRoutingServiceTest()

		route, err := svc.ComputeRoute(ctx, origin, nil, types.TravelModeDriving)
		assert.ErrorIs(t, err, types.ErrRoutingFailed)
		assert.Nil(t, route)
		client.AssertNotCalled(t, "Directions", mock.Anything, mock.Anything)
	})
}
