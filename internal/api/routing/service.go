package routing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service computes a route through an itinerary's stops. Only invoked with a
// non-empty stop sequence; routing failure never invalidates the itinerary
// the stops came from.
type Service interface {
	ComputeRoute(ctx context.Context, origin types.Location, stops []types.ItineraryStop, mode types.TravelMode) (*types.Route, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	directions DirectionsClient
}

func NewServiceImpl(directions DirectionsClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		directions: directions,
	}
}

// ComputeRoute maps every stop to a waypoint in input order. The last input
// stop is always the destination; the preceding stops are intermediates the
// routing service may reorder, never promote.
func (s *ServiceImpl) ComputeRoute(ctx context.Context, origin types.Location, stops []types.ItineraryStop, mode types.TravelMode) (*types.Route, error) {
	ctx, span := otel.Tracer("RoutingService").Start(ctx, "ComputeRoute", trace.WithAttributes(
		attribute.Int("route.stop_count", len(stops)),
		attribute.String("route.mode", string(mode)),
	))
	defer span.End()

	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: no stops to route", types.ErrRoutingFailed)
	}

	destination := stops[len(stops)-1].Coordinates
	waypoints := make([]types.Coordinates, 0, len(stops)-1)
	for _, stop := range stops[:len(stops)-1] {
		waypoints = append(waypoints, stop.Coordinates)
	}

	route, err := s.directions.Directions(ctx, DirectionsRequest{
		Origin:            origin.Coordinates(),
		Destination:       destination,
		Waypoints:         waypoints,
		Mode:              mode,
		OptimizeWaypoints: true,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Directions call failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Directions call failed")
		return nil, fmt.Errorf("%w: %v", types.ErrRoutingFailed, err)
	}

	span.SetStatus(codes.Ok, "Route computed")
	return &types.Route{
		Summary:         route.Summary,
		Polyline:        route.Polyline,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		WaypointOrder:   route.WaypointOrder,
		Destination:     destination,
	}, nil
}
