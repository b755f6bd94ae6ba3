package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) ([]string, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func setupLocationServiceTest() (*ServiceImpl, *MockGeocoder) {
	geocoder := new(MockGeocoder)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	addressCache := cache.New(5*time.Minute, 10*time.Minute)
	return NewServiceImpl(geocoder, addressCache, logger), geocoder
}

func TestServiceImpl_ResolveFromCoordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the first formatted address", func(t *testing.T) {
		svc, geocoder := setupLocationServiceTest()
		geocoder.On("ReverseGeocode", mock.Anything, 34.0522, -118.2437).
			Return([]string{"123 Main St, Los Angeles, CA", "Los Angeles, CA"}, nil).Once()

		loc := svc.ResolveFromCoordinates(ctx, 34.0522, -118.2437)

		assert.Equal(t, "123 Main St, Los Angeles, CA", loc.Address)
		assert.Equal(t, 34.0522, loc.Latitude)
		assert.Equal(t, -118.2437, loc.Longitude)
		geocoder.AssertExpectations(t)
	})

	t.Run("falls back to coordinate string on geocoder error", func(t *testing.T) {
		svc, geocoder := setupLocationServiceTest()
		geocoder.On("ReverseGeocode", mock.Anything, 34.1, -118.3).
			Return(nil, errors.New("geocoder unreachable")).Once()

		loc := svc.ResolveFromCoordinates(ctx, 34.1, -118.3)

		assert.Equal(t, "Lat: 34.1000, Lng: -118.3000", loc.Address)
		assert.Equal(t, 34.1, loc.Latitude)
		assert.Equal(t, -118.3, loc.Longitude)
		geocoder.AssertExpectations(t)
	})

	t.Run("falls back when geocoder returns no candidates", func(t *testing.T) {
		svc, geocoder := setupLocationServiceTest()
		geocoder.On("ReverseGeocode", mock.Anything, 51.5074, -0.1278).
			Return([]string{}, nil).Once()

		loc := svc.ResolveFromCoordinates(ctx, 51.5074, -0.1278)

		assert.Equal(t, "Lat: 51.5074, Lng: -0.1278", loc.Address)
		geocoder.AssertExpectations(t)
	})

	t.Run("serves repeated lookups from cache", func(t *testing.T) {
		svc, geocoder := setupLocationServiceTest()
		geocoder.On("ReverseGeocode", mock.Anything, 40.7128, -74.006).
			Return([]string{"New York, NY"}, nil).Once()

		first := svc.ResolveFromCoordinates(ctx, 40.7128, -74.006)
		second := svc.ResolveFromCoordinates(ctx, 40.7128, -74.006)

		assert.Equal(t, first, second)
		geocoder.AssertExpectations(t)
		geocoder.AssertNumberOfCalls(t, "ReverseGeocode", 1)
	})

	t.Run("fallback addresses are not cached", func(t *testing.T) {
		svc, geocoder := setupLocationServiceTest()
		geocoder.On("ReverseGeocode", mock.Anything, 48.8566, 2.3522).
			Return(nil, errors.New("quota exceeded")).Once()
		geocoder.On("ReverseGeocode", mock.Anything, 48.8566, 2.3522).
			Return([]string{"Paris, France"}, nil).Once()

		first := svc.ResolveFromCoordinates(ctx, 48.8566, 2.3522)
		second := svc.ResolveFromCoordinates(ctx, 48.8566, 2.3522)

		assert.Equal(t, "Lat: 48.8566, Lng: 2.3522", first.Address)
		assert.Equal(t, "Paris, France", second.Address)
		geocoder.AssertExpectations(t)
	})
}

func TestServiceImpl_ResolveFromPlaceSelection(t *testing.T) {
	svc, _ := setupLocationServiceTest()

	t.Run("place with geometry resolves", func(t *testing.T) {
		loc, err := svc.ResolveFromPlaceSelection(PlaceSelection{
			FormattedAddress: "Griffith Observatory, Los Angeles, CA",
			Geometry:         &types.Coordinates{Latitude: 34.1184, Longitude: -118.3004},
		})
		require.NoError(t, err)
		assert.Equal(t, "Griffith Observatory, Los Angeles, CA", loc.Address)
		assert.Equal(t, 34.1184, loc.Latitude)
		assert.Equal(t, -118.3004, loc.Longitude)
	})

	t.Run("place without geometry is rejected", func(t *testing.T) {
		_, err := svc.ResolveFromPlaceSelection(PlaceSelection{
			FormattedAddress: "Somewhere vague",
		})
		assert.ErrorIs(t, err, types.ErrNoGeometry)
	})
}
