package types

// ItineraryStop is one suggested sightseeing stop. Stops are produced only by
// the itinerary client's validated parse, never hand-constructed elsewhere.
type ItineraryStop struct {
	PlaceName   string      `json:"place_name"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
}

// Itinerary is a validated generation result. An empty Stops slice is valid;
// such an itinerary is rendered summary-only and never routed.
type Itinerary struct {
	Summary string          `json:"summary"`
	Stops   []ItineraryStop `json:"itinerary"`
}

// GroundingSource is a citation the generation service reports as supporting
// evidence. Set only together with a successful itinerary, cleared with it.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Route is the computed route through an itinerary's stops.
type Route struct {
	Summary         string      `json:"summary,omitempty"`
	Polyline        string      `json:"polyline"`
	DistanceMeters  int         `json:"distance_meters"`
	DurationSeconds int         `json:"duration_seconds"`
	WaypointOrder   []int       `json:"waypoint_order,omitempty"`
	Destination     Coordinates `json:"destination"`
}
