package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// PlaceSelection is what the place-selection collaborator emits: a formatted
// address plus optional geometry.
type PlaceSelection struct {
	FormattedAddress string             `json:"formatted_address"`
	Geometry         *types.Coordinates `json:"geometry,omitempty"`
}

// Service resolves user input into a canonical Location.
type Service interface {
	// ResolveFromCoordinates reverse-geocodes a coordinate pair. It never
	// fails: when the geocoder errors or returns no candidates the address
	// falls back to a coordinate string, so the pipeline can always proceed.
	ResolveFromCoordinates(ctx context.Context, lat, lng float64) types.Location
	// ResolveFromPlaceSelection derives a Location from a selected place.
	// Fails with types.ErrNoGeometry when the place carries no geometry.
	ResolveFromPlaceSelection(place PlaceSelection) (types.Location, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	geocoder Geocoder
	cache    *cache.Cache
}

func NewServiceImpl(geocoder Geocoder, addressCache *cache.Cache, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
		cache:    addressCache,
	}
}

func reverseGeocodeCacheKey(lat, lng float64) string {
	return fmt.Sprintf("revgeo:%.6f:%.6f", lat, lng)
}

func (s *ServiceImpl) ResolveFromCoordinates(ctx context.Context, lat, lng float64) types.Location {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "ResolveFromCoordinates", trace.WithAttributes(
		attribute.Float64("location.latitude", lat),
		attribute.Float64("location.longitude", lng),
	))
	defer span.End()

	key := reverseGeocodeCacheKey(lat, lng)
	if cached, found := s.cache.Get(key); found {
		if address, ok := cached.(string); ok {
			span.SetStatus(codes.Ok, "Address served from cache")
			return types.Location{Latitude: lat, Longitude: lng, Address: address}
		}
	}

	addresses, err := s.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil || len(addresses) == 0 {
		// Recovered locally, never surfaced as an error.
		if err != nil {
			s.logger.WarnContext(ctx, "Reverse geocoding failed, using coordinate fallback", slog.Any("error", err))
			span.RecordError(err)
		} else {
			s.logger.DebugContext(ctx, "Reverse geocoding returned no candidates, using coordinate fallback")
		}
		span.SetStatus(codes.Ok, "Fallback address synthesized")
		return types.Location{Latitude: lat, Longitude: lng, Address: types.FallbackAddress(lat, lng)}
	}

	address := addresses[0]
	s.cache.Set(key, address, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Address resolved")
	return types.Location{Latitude: lat, Longitude: lng, Address: address}
}

func (s *ServiceImpl) ResolveFromPlaceSelection(place PlaceSelection) (types.Location, error) {
	if place.Geometry == nil {
		s.logger.Warn("Place selection carries no geometry", slog.String("address", place.FormattedAddress))
		return types.Location{}, types.ErrNoGeometry
	}
	return types.Location{
		Latitude:  place.Geometry.Latitude,
		Longitude: place.Geometry.Longitude,
		Address:   place.FormattedAddress,
	}, nil
}
