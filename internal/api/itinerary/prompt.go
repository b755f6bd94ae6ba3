package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

// BuildItineraryPrompt renders the generation prompt for one run. Pure:
// identical inputs always produce byte-identical prompt text.
func BuildItineraryPrompt(origin types.Location, c types.TravelConstraints) string {
	return fmt.Sprintf(`
        Plan a sightseeing day trip starting from '%s' (latitude %.6f, longitude %.6f).
        Every suggested stop must be within %g miles of the starting point.
        The whole trip, including travel between stops, must take at most %g hours.
        The visitor travels by %s.
        Respond with ONLY a single JSON object inside a fenced code block, with the following shape:
        {
            "summary": "A short narrative summary of the suggested trip",
            "itinerary": [
                {
                    "place_name": "Name of the stop",
                    "description": "A 1-2 sentence description of the stop and why it fits the trip",
                    "coordinates": {
                        "latitude": <float, between -90 and 90>,
                        "longitude": <float, between -180 and 180>
                    }
                }
            ]
        }
        Order the stops in a sensible visiting sequence. Do not include any text outside the fenced code block.
    `, origin.Address, origin.Latitude, origin.Longitude, c.RadiusMiles, c.DurationHours, c.Mode)
}
