package planner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-day-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

// Pipeline is the orchestrating state machine: it owns the single
// in-flight-run invariant, the current-location slot and the last settled
// result. At most one run is active; new requests while a run is active are
// rejected, never queued or merged.
type Pipeline struct {
	logger      *slog.Logger
	itineraries itinerary.Service
	routes      routing.Service
	metrics     *metrics.AppMetrics

	mu         sync.Mutex
	running    bool
	state      types.PipelineState
	lastRunID  uint64
	origin     *types.Location
	lastResult *types.PlanResult
}

func NewPipeline(itineraries itinerary.Service, routes routing.Service, m *metrics.AppMetrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger:      logger,
		itineraries: itineraries,
		routes:      routes,
		metrics:     m,
		state:       types.StateIdle,
	}
}

// SetCurrentLocation replaces the current-location slot wholesale.
// Last write wins; there is no queue or history.
func (p *Pipeline) SetCurrentLocation(loc types.Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.origin = &loc
}

// CurrentLocation returns the slot's value, if set.
func (p *Pipeline) CurrentLocation() (types.Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.origin == nil {
		return types.Location{}, false
	}
	return *p.origin, true
}

// Snapshot returns the externally visible pipeline state.
func (p *Pipeline) Snapshot() types.PipelineSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := types.PipelineSnapshot{State: p.state}
	if p.origin != nil {
		loc := *p.origin
		snap.CurrentLocation = &loc
	}
	if p.lastResult != nil {
		res := *p.lastResult
		snap.LastResult = &res
	}
	return snap
}

// begin is the entry guard plus run-start bookkeeping: it rejects a second
// run while one is active, fails fast when no start location is set, issues
// the run ID, snapshots the origin and clears the prior result so stale
// output never remains visible beside an in-progress run.
func (p *Pipeline) begin() (uint64, types.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return 0, types.Location{}, types.ErrRunInProgress
	}
	if p.origin == nil {
		return 0, types.Location{}, types.ErrNoStartLocation
	}
	p.running = true
	p.lastRunID++
	p.lastResult = nil
	p.state = types.StateResolving
	return p.lastRunID, *p.origin, nil
}

// advance moves the state machine forward, refusing stale runs: a result
// about to be applied under an ID that is no longer the most recent is
// discarded rather than overwriting newer intent.
func (p *Pipeline) advance(runID uint64, state types.PipelineState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if runID != p.lastRunID {
		p.logger.Warn("Discarding stale pipeline transition",
			slog.Uint64("runID", runID),
			slog.Uint64("latestRunID", p.lastRunID),
			slog.String("state", string(state)))
		return false
	}
	p.state = state
	return true
}

// settle records the terminal outcome and returns the pipeline to Idle,
// ready for a new user-initiated attempt.
func (p *Pipeline) settle(runID uint64, result *types.PlanResult) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if runID != p.lastRunID {
		p.logger.Warn("Discarding stale pipeline result",
			slog.Uint64("runID", runID),
			slog.Uint64("latestRunID", p.lastRunID))
		return false
	}
	p.lastResult = result
	p.state = types.StateIdle
	p.running = false
	return true
}

// Plan executes one end-to-end run for a snapshot of the current location and
// the given constraints. Suspension happens only at the network-bound calls;
// results are applied strictly in stage order.
func (p *Pipeline) Plan(ctx context.Context, constraints types.TravelConstraints) (*types.PlanResult, error) {
	ctx, span := otel.Tracer("PlanningPipeline").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("plan.mode", string(constraints.Mode)),
		attribute.Float64("plan.radius_miles", constraints.RadiusMiles),
		attribute.Float64("plan.duration_hours", constraints.DurationHours),
	))
	defer span.End()

	start := time.Now()
	runID, origin, err := p.begin()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Run rejected")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("plan.run_id", int64(runID)))
	l := p.logger.With(slog.Uint64("runID", runID))
	l.InfoContext(ctx, "Planning run started", slog.String("origin", origin.Address))

	result := &types.PlanResult{
		RunID:       runID,
		Origin:      origin,
		Constraints: constraints,
	}

	prompt := itinerary.BuildItineraryPrompt(origin, constraints)

	p.advance(runID, types.StateGenerating)
	resp, err := p.itineraries.Invoke(ctx, prompt)

	var itin *types.Itinerary
	var sources []types.GroundingSource
	if err == nil {
		result.InteractionID = resp.InteractionID
		p.advance(runID, types.StateValidating)
		itin, sources, err = p.itineraries.Parse(resp)
	}
	if err != nil {
		// Fatal to the run: itinerary, sources and route all stay absent and
		// a single generic message is surfaced.
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		result.Status = types.RunGenerationFailure
		result.ErrorMessage = types.MsgGenerationFailed
		p.settle(runID, result)
		p.record(ctx, result, start)
		return result, nil
	}

	result.Itinerary = itin
	result.Sources = sources

	if len(itin.Stops) == 0 {
		// Valid itinerary with zero route stops: summary-only success.
		l.InfoContext(ctx, "Itinerary has no stops, settling without a route")
		result.Status = types.RunSuccess
		span.SetStatus(codes.Ok, "Settled without route")
		p.settle(runID, result)
		p.record(ctx, result, start)
		return result, nil
	}

	p.advance(runID, types.StateRouting)
	route, routeErr := p.routes.ComputeRoute(ctx, origin, itin.Stops, constraints.Mode)
	if routeErr != nil {
		// Routing failure is non-fatal: the itinerary and sources are kept.
		l.WarnContext(ctx, "Route computation failed, keeping itinerary", slog.Any("error", routeErr))
		span.RecordError(routeErr)
		result.Status = types.RunPartialSuccess
		result.ErrorMessage = types.MsgRoutingFailed
		span.SetStatus(codes.Ok, "Settled partially")
	} else {
		result.Status = types.RunSuccess
		result.Route = route
		span.SetStatus(codes.Ok, "Settled successfully")
	}

	p.settle(runID, result)
	p.record(ctx, result, start)
	l.InfoContext(ctx, "Planning run settled",
		slog.String("status", string(result.Status)),
		slog.Int("stop_count", len(itin.Stops)),
		slog.Int("source_count", len(sources)))
	return result, nil
}

func (p *Pipeline) record(ctx context.Context, result *types.PlanResult, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.PlanRunsTotal.Add(ctx, 1)
	switch result.Status {
	case types.RunGenerationFailure:
		p.metrics.GenerationFailuresTotal.Add(ctx, 1)
	case types.RunPartialSuccess:
		p.metrics.RoutingFailuresTotal.Add(ctx, 1)
	}
	p.metrics.RunDurationSeconds.Record(ctx, time.Since(start).Seconds())
}
