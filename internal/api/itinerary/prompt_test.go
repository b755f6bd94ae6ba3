package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-day-trip-planner/internal/types"
)

func TestBuildItineraryPrompt(t *testing.T) {
	origin := types.Location{Latitude: 34.0522, Longitude: -118.2437, Address: "123 Main St"}
	constraints := types.TravelConstraints{
		Mode:          types.TravelModeDriving,
		RadiusMiles:   10,
		DurationHours: 4,
	}

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first := BuildItineraryPrompt(origin, constraints)
		second := BuildItineraryPrompt(origin, constraints)
		assert.Equal(t, first, second)
	})

	t.Run("encodes origin and constraints", func(t *testing.T) {
		prompt := BuildItineraryPrompt(origin, constraints)
		assert.Contains(t, prompt, "123 Main St")
		assert.Contains(t, prompt, "within 10 miles")
		assert.Contains(t, prompt, "at most 4 hours")
		assert.Contains(t, prompt, "travels by driving")
	})

	t.Run("requests the fenced JSON contract", func(t *testing.T) {
		prompt := BuildItineraryPrompt(origin, constraints)
		assert.Contains(t, prompt, "fenced code block")
		assert.Contains(t, prompt, `"summary"`)
		assert.Contains(t, prompt, `"itinerary"`)
		assert.Contains(t, prompt, `"place_name"`)
		assert.Contains(t, prompt, `"coordinates"`)
	})

	t.Run("different constraints produce different prompts", func(t *testing.T) {
		other := constraints
		other.Mode = types.TravelModeWalking
		assert.NotEqual(t, BuildItineraryPrompt(origin, constraints), BuildItineraryPrompt(origin, other))
	})
}
