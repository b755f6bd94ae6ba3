package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

// extractJSONBody strips optional markdown fences (with or without a language
// tag) and incidental whitespace, then narrows the text to the outermost JSON
// object when prose surrounds it. Returns "" when no JSON body is present.
func extractJSONBody(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return ""
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return ""
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}

// itineraryPayload uses pointer fields so missing keys are distinguishable
// from zero values. Validation is all-or-nothing.
type itineraryPayload struct {
	Summary   *string `json:"summary"`
	Itinerary *[]struct {
		PlaceName   *string `json:"place_name"`
		Description *string `json:"description"`
		Coordinates *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordinates"`
	} `json:"itinerary"`
}

func validateItinerary(jsonStr string) (*types.Itinerary, error) {
	var payload itineraryPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q has wrong type", types.ErrSchemaViolation, typeErr.Field)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedResponse, err)
	}

	if payload.Summary == nil {
		return nil, fmt.Errorf("%w: missing 'summary'", types.ErrSchemaViolation)
	}
	if payload.Itinerary == nil {
		return nil, fmt.Errorf("%w: missing 'itinerary'", types.ErrSchemaViolation)
	}

	stops := make([]types.ItineraryStop, 0, len(*payload.Itinerary))
	for i, stop := range *payload.Itinerary {
		switch {
		case stop.PlaceName == nil:
			return nil, fmt.Errorf("%w: stop %d missing 'place_name'", types.ErrSchemaViolation, i)
		case stop.Description == nil:
			return nil, fmt.Errorf("%w: stop %d missing 'description'", types.ErrSchemaViolation, i)
		case stop.Coordinates == nil || stop.Coordinates.Latitude == nil || stop.Coordinates.Longitude == nil:
			return nil, fmt.Errorf("%w: stop %d missing coordinates", types.ErrSchemaViolation, i)
		}
		stops = append(stops, types.ItineraryStop{
			PlaceName:   *stop.PlaceName,
			Description: *stop.Description,
			Coordinates: types.Coordinates{
				Latitude:  *stop.Coordinates.Latitude,
				Longitude: *stop.Coordinates.Longitude,
			},
		})
	}

	return &types.Itinerary{Summary: *payload.Summary, Stops: stops}, nil
}
