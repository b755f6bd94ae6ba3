package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

// DirectionsRequest is the routing collaborator's input. The destination is
// fixed by the caller; only the intermediate waypoints may be reordered when
// OptimizeWaypoints is set.
type DirectionsRequest struct {
	Origin            types.Coordinates
	Destination       types.Coordinates
	Waypoints         []types.Coordinates
	Mode              types.TravelMode
	OptimizeWaypoints bool
}

// DirectionsRoute is the routing collaborator's answer, reduced to what the
// planner needs.
type DirectionsRoute struct {
	Summary         string
	Polyline        string
	WaypointOrder   []int
	DistanceMeters  int
	DurationSeconds int
}

// DirectionsClient abstracts the routing collaborator.
type DirectionsClient interface {
	Directions(ctx context.Context, req DirectionsRequest) (*DirectionsRoute, error)
}

const defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

var _ DirectionsClient = (*GoogleDirectionsClient)(nil)

// GoogleDirectionsClient calls the Google Directions API.
type GoogleDirectionsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewGoogleDirectionsClient(apiKey, baseURL string, logger *slog.Logger) *GoogleDirectionsClient {
	if baseURL == "" {
		baseURL = defaultDirectionsURL
	}
	return &GoogleDirectionsClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type directionsAPIResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary          string `json:"summary"`
		WaypointOrder    []int  `json:"waypoint_order"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func formatLatLng(c types.Coordinates) string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}

func (c *GoogleDirectionsClient) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsRoute, error) {
	params := url.Values{}
	params.Set("origin", formatLatLng(req.Origin))
	params.Set("destination", formatLatLng(req.Destination))
	params.Set("mode", string(req.Mode))
	params.Set("key", c.apiKey)
	if len(req.Waypoints) > 0 {
		parts := make([]string, 0, len(req.Waypoints)+1)
		if req.OptimizeWaypoints {
			parts = append(parts, "optimize:true")
		}
		for _, w := range req.Waypoints {
			parts = append(parts, formatLatLng(w))
		}
		params.Set("waypoints", strings.Join(parts, "|"))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload directionsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Routes) == 0 {
		c.logger.WarnContext(ctx, "Directions returned non-OK status",
			slog.String("status", payload.Status),
			slog.String("error_message", payload.ErrorMessage))
		return nil, fmt.Errorf("directions returned status %s", payload.Status)
	}

	route := payload.Routes[0]
	out := &DirectionsRoute{
		Summary:       route.Summary,
		Polyline:      route.OverviewPolyline.Points,
		WaypointOrder: route.WaypointOrder,
	}
	for _, leg := range route.Legs {
		out.DistanceMeters += leg.Distance.Value
		out.DurationSeconds += leg.Duration.Value
	}
	return out, nil
}
