package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-day-trip-planner/internal/api/planner"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PlannerHandler *planner.HandlerImpl
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/location", func(r chi.Router) {
			r.Put("/coordinates", cfg.PlannerHandler.SetLocationFromCoordinates)
			r.Put("/place", cfg.PlannerHandler.SetLocationFromPlace)
			r.Put("/device", cfg.PlannerHandler.SetLocationFromDevice)
		})
		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/plan", cfg.PlannerHandler.PlanItinerary)
			r.Get("/current", cfg.PlannerHandler.GetCurrentPlan)
		})
	})

	return r
}
