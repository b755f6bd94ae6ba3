package routing

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

func newTestDirectionsClient(t *testing.T, handler http.HandlerFunc) *GoogleDirectionsClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGoogleDirectionsClient("test-key", server.URL, logger)
}

func TestGoogleDirectionsClient_Directions(t *testing.T) {
	ctx := context.Background()
	req := DirectionsRequest{
		Origin:      types.Coordinates{Latitude: 34.0522, Longitude: -118.2437},
		Destination: types.Coordinates{Latitude: 34.01, Longitude: -118.49},
		Waypoints: []types.Coordinates{
			{Latitude: 34.05, Longitude: -118.24},
			{Latitude: 34.07, Longitude: -118.26},
		},
		Mode:              types.TravelModeDriving,
		OptimizeWaypoints: true,
	}

	t.Run("builds the waypoint parameter and sums legs", func(t *testing.T) {
		client := newTestDirectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "34.052200,-118.243700", q.Get("origin"))
			assert.Equal(t, "34.010000,-118.490000", q.Get("destination"))
			assert.Equal(t, "driving", q.Get("mode"))
			assert.Equal(t, "optimize:true|34.050000,-118.240000|34.070000,-118.260000", q.Get("waypoints"))
			w.Write([]byte(`{
				"status": "OK",
				"routes": [{
					"summary": "I-10 W",
					"waypoint_order": [1, 0],
					"overview_polyline": {"points": "abc123"},
					"legs": [
						{"distance": {"value": 8000}, "duration": {"value": 700}},
						{"distance": {"value": 9000}, "duration": {"value": 800}},
						{"distance": {"value": 7000}, "duration": {"value": 600}}
					]
				}]
			}`))
		})

		route, err := client.Directions(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "I-10 W", route.Summary)
		assert.Equal(t, "abc123", route.Polyline)
		assert.Equal(t, []int{1, 0}, route.WaypointOrder)
		assert.Equal(t, 24000, route.DistanceMeters)
		assert.Equal(t, 2100, route.DurationSeconds)
	})

	t.Run("omits the waypoint parameter when there are no intermediates", func(t *testing.T) {
		client := newTestDirectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("waypoints"))
			w.Write([]byte(`{"status": "OK", "routes": [{"overview_polyline": {"points": "x"}, "legs": []}]}`))
		})

		direct := req
		direct.Waypoints = nil
		_, err := client.Directions(ctx, direct)
		require.NoError(t, err)
	})

	t.Run("non-OK status is an error", func(t *testing.T) {
		client := newTestDirectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
		})

		route, err := client.Directions(ctx, req)
		assert.ErrorContains(t, err, "ZERO_RESULTS")
		assert.Nil(t, route)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		client := newTestDirectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.Directions(ctx, req)
		assert.Error(t, err)
	})
}
