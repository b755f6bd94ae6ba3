package planner

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-day-trip-planner/internal/api"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/location"
	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

type HandlerImpl struct {
	pipeline  *Pipeline
	locations location.Service
	logger    *slog.Logger
}

func NewHandlerImpl(pipeline *Pipeline, locations location.Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		pipeline:  pipeline,
		locations: locations,
		logger:    logger,
	}
}

type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (c coordinatesRequest) validate() (types.Coordinates, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return types.Coordinates{}, false
	}
	coords := types.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}
	return coords, coords.Valid()
}

// SetLocationFromCoordinates resolves a map click or manual coordinate entry
// into the current start location.
func (h *HandlerImpl) SetLocationFromCoordinates(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "SetLocationFromCoordinates", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/location/coordinates"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SetLocationFromCoordinates"))

	var req coordinatesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	coords, ok := req.validate()
	if !ok {
		span.SetStatus(codes.Error, "Invalid coordinates")
		api.ErrorResponse(w, r, http.StatusBadRequest, "latitude and longitude are required and must be valid")
		return
	}

	loc := h.locations.ResolveFromCoordinates(ctx, coords.Latitude, coords.Longitude)
	h.pipeline.SetCurrentLocation(loc)

	l.InfoContext(ctx, "Current location set from coordinates", slog.String("address", loc.Address))
	span.SetAttributes(attribute.String("app.location.address", loc.Address))
	span.SetStatus(codes.Ok, "Location resolved")
	api.WriteJSONResponse(w, r, http.StatusOK, loc)
}

// SetLocationFromPlace resolves a place selected in the autocomplete UI.
func (h *HandlerImpl) SetLocationFromPlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "SetLocationFromPlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/location/place"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SetLocationFromPlace"))

	var place location.PlaceSelection
	if err := api.DecodeJSONBody(w, r, &place); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := h.locations.ResolveFromPlaceSelection(place)
	if err != nil {
		// Location state is left unchanged on any location error.
		l.WarnContext(ctx, "Place selection could not be resolved", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place has no geometry")
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.pipeline.SetCurrentLocation(loc)

	l.InfoContext(ctx, "Current location set from place selection", slog.String("address", loc.Address))
	span.SetStatus(codes.Ok, "Location resolved")
	api.WriteJSONResponse(w, r, http.StatusOK, loc)
}

type deviceLocationRequest struct {
	Latitude  *float64                   `json:"latitude,omitempty"`
	Longitude *float64                   `json:"longitude,omitempty"`
	ErrorCode types.GeolocationErrorCode `json:"error_code,omitempty"`
}

// SetLocationFromDevice receives the device geolocation result: either a
// coordinate pair or one of the geolocation error codes.
func (h *HandlerImpl) SetLocationFromDevice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "SetLocationFromDevice", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/location/device"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SetLocationFromDevice"))

	var req deviceLocationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.ErrorCode != "" {
		locErr := types.LocationErrorFor(req.ErrorCode)
		l.WarnContext(ctx, "Device geolocation failed", slog.String("code", string(req.ErrorCode)))
		span.SetStatus(codes.Error, "Device geolocation failed")
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, locErr.Error())
		return
	}

	coords, ok := coordinatesRequest{Latitude: req.Latitude, Longitude: req.Longitude}.validate()
	if !ok {
		span.SetStatus(codes.Error, "Invalid coordinates")
		api.ErrorResponse(w, r, http.StatusBadRequest, "latitude and longitude are required and must be valid")
		return
	}

	loc := h.locations.ResolveFromCoordinates(ctx, coords.Latitude, coords.Longitude)
	h.pipeline.SetCurrentLocation(loc)

	l.InfoContext(ctx, "Current location set from device geolocation", slog.String("address", loc.Address))
	span.SetStatus(codes.Ok, "Location resolved")
	api.WriteJSONResponse(w, r, http.StatusOK, loc)
}

// PlanItinerary runs one planning pipeline execution and returns its settled
// outcome.
func (h *HandlerImpl) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "PlanItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanItinerary"))

	var constraints types.TravelConstraints
	if err := api.DecodeJSONBody(w, r, &constraints); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := constraints.Validate(); err != nil {
		l.WarnContext(ctx, "Invalid travel constraints", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid travel constraints")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Plan(ctx, constraints)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrRunInProgress):
			span.SetStatus(codes.Error, "Run already active")
			api.ErrorResponse(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, types.ErrNoStartLocation):
			span.SetStatus(codes.Error, "No start location")
			api.ErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			l.ErrorContext(ctx, "Planning run failed unexpectedly", slog.Any("error", err))
			span.SetStatus(codes.Error, "Planning run failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan itinerary")
		}
		return
	}

	l.InfoContext(ctx, "Planning run settled", slog.String("status", string(result.Status)))
	span.SetAttributes(attribute.String("app.plan.status", string(result.Status)))
	span.SetStatus(codes.Ok, "Plan settled")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetCurrentPlan returns the pipeline snapshot: current stage, location slot
// and the last settled result.
func (h *HandlerImpl) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("PlannerHandler").Start(r.Context(), "GetCurrentPlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/current"),
	))
	defer span.End()

	snap := h.pipeline.Snapshot()
	span.SetStatus(codes.Ok, "Snapshot returned")
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}
