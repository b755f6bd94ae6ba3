package container

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-day-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-day-trip-planner/config"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/location"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/routing"
)

// Container holds all application dependencies: the session context object
// that replaces ambient global handles. Created once at startup, torn down at
// process end.
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pipeline       *planner.Pipeline
	PlannerHandler *planner.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	metrics.InitAppMetrics()

	mapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	// Location resolution with a reverse-geocode cache
	geocodeTTL := time.Duration(cfg.Cache.GeocodeTTLMinutes) * time.Minute
	cleanup := time.Duration(cfg.Cache.CleanupMinutes) * time.Minute
	addressCache := cache.New(geocodeTTL, cleanup)
	geocoder := location.NewGoogleGeocoder(mapsAPIKey, cfg.Maps.GeocodeURL, logger)
	locationService := location.NewServiceImpl(geocoder, addressCache, logger)

	// Itinerary generation
	aiClient, err := itinerary.NewGeminiClient(ctx, cfg.Gemini.Model)
	if err != nil {
		logger.Error("Failed to initialize generative AI client", slog.Any("error", err))
		return nil, err
	}
	itineraryService := itinerary.NewServiceImpl(aiClient, logger)

	// Route computation
	directions := routing.NewGoogleDirectionsClient(mapsAPIKey, cfg.Maps.DirectionsURL, logger)
	routingService := routing.NewServiceImpl(directions, logger)

	pipeline := planner.NewPipeline(itineraryService, routingService, metrics.Get(), logger)
	plannerHandler := planner.NewHandlerImpl(pipeline, locationService, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Pipeline:       pipeline,
		PlannerHandler: plannerHandler,
	}, nil
}
