package types

import "errors"

// Location errors. Surfaced to the user; the current-location slot is left
// unchanged when any of these occur.
var (
	ErrNoGeometry          = errors.New("selected place has no geometry")
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("device position unavailable")
	ErrPositionTimeout     = errors.New("timed out acquiring device position")
	ErrPositionUnknown     = errors.New("unknown geolocation error")
)

// ErrNoStartLocation fails a plan request before the pipeline starts.
var ErrNoStartLocation = errors.New("no start location set")

// Generation errors. All are fatal to the run: itinerary, sources and route
// are cleared and a single generic message is surfaced.
var (
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	ErrMalformedResponse     = errors.New("generation response contains no JSON body")
	ErrSchemaViolation       = errors.New("generated itinerary violates the expected schema")
)

// ErrRoutingFailed does not invalidate an already-produced itinerary; routing
// and generation are independent axes of the run outcome.
var ErrRoutingFailed = errors.New("routing service returned no usable route")

// ErrRunInProgress rejects a plan request while another run is active.
// Requests are rejected, not queued or merged.
var ErrRunInProgress = errors.New("a plan is already being generated")

// IsGenerationError reports whether err belongs to the generation taxonomy.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationUnavailable) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrSchemaViolation)
}

// User-facing messages. Generation sub-kinds collapse into one message;
// routing keeps its own so a partial success reads correctly.
const (
	MsgGenerationFailed = "Failed to generate itinerary. Please try again."
	MsgRoutingFailed    = "Failed to calculate directions for the suggested stops."
)

// GeolocationErrorCode mirrors the error codes the device geolocation
// collaborator can report.
type GeolocationErrorCode string

const (
	GeolocationPermissionDenied    GeolocationErrorCode = "permission_denied"
	GeolocationPositionUnavailable GeolocationErrorCode = "position_unavailable"
	GeolocationTimeout             GeolocationErrorCode = "timeout"
	GeolocationUnknown             GeolocationErrorCode = "unknown"
)

// LocationErrorFor maps a device geolocation error code to the location error
// taxonomy. Unrecognized codes map to ErrPositionUnknown.
func LocationErrorFor(code GeolocationErrorCode) error {
	switch code {
	case GeolocationPermissionDenied:
		return ErrPermissionDenied
	case GeolocationPositionUnavailable:
		return ErrPositionUnavailable
	case GeolocationTimeout:
		return ErrPositionTimeout
	default:
		return ErrPositionUnknown
	}
}
