package types

import "github.com/google/uuid"

// PipelineState tracks where the planning pipeline is within one run.
type PipelineState string

const (
	StateIdle       PipelineState = "idle"
	StateResolving  PipelineState = "resolving"
	StateGenerating PipelineState = "generating"
	StateValidating PipelineState = "validating"
	StateRouting    PipelineState = "routing"
)

// RunStatus is the terminal outcome of one pipeline run.
type RunStatus string

const (
	RunSuccess           RunStatus = "success"
	RunPartialSuccess    RunStatus = "partial_success"
	RunGenerationFailure RunStatus = "generation_failure"
)

// PlanResult is the settled outcome of a run: the (origin, constraints)
// snapshot it was computed from plus whatever the run produced.
//
// Invariants:
//   - generation_failure: Itinerary, Sources and Route are all absent.
//   - partial_success: Itinerary (and possibly Sources) present, Route absent,
//     ErrorMessage mentions routing only.
//   - success: Route present whenever the itinerary had stops.
type PlanResult struct {
	RunID         uint64            `json:"run_id"`
	InteractionID uuid.UUID         `json:"interaction_id,omitempty"`
	Status        RunStatus         `json:"status"`
	Origin        Location          `json:"origin"`
	Constraints   TravelConstraints `json:"constraints"`
	Itinerary     *Itinerary        `json:"itinerary,omitempty"`
	Sources       []GroundingSource `json:"sources,omitempty"`
	Route         *Route            `json:"route,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
}

// PipelineSnapshot is the externally visible pipeline state: the current
// stage, the current-location slot and the last settled result, if any.
type PipelineSnapshot struct {
	State           PipelineState `json:"state"`
	CurrentLocation *Location     `json:"current_location,omitempty"`
	LastResult      *PlanResult   `json:"last_result,omitempty"`
}
