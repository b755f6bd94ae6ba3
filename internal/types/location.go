package types

import "fmt"

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Location is a resolved start location: coordinates plus a human-readable
// address. It is immutable once produced by the location resolver and is
// replaced wholesale on each new selection.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// FallbackAddress synthesizes an address string directly from coordinates.
// Used when reverse geocoding fails or returns no candidates.
func FallbackAddress(lat, lng float64) string {
	return fmt.Sprintf("Lat: %.4f, Lng: %.4f", lat, lng)
}

type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"
)

// ParseTravelMode validates a travel mode received from a client.
func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(s) {
	case TravelModeDriving, TravelModeWalking, TravelModeBicycling, TravelModeTransit:
		return TravelMode(s), nil
	default:
		return "", fmt.Errorf("invalid travel mode %q", s)
	}
}

// TravelConstraints bound one planning run. Captured as an immutable snapshot
// at the moment the run starts.
type TravelConstraints struct {
	Mode          TravelMode `json:"travel_mode"`
	RadiusMiles   float64    `json:"radius_miles"`
	DurationHours float64    `json:"duration_hours"`
}

func (c TravelConstraints) Validate() error {
	if _, err := ParseTravelMode(string(c.Mode)); err != nil {
		return err
	}
	if c.RadiusMiles < 1 || c.RadiusMiles > 100 {
		return fmt.Errorf("radius_miles must be between 1 and 100, got %g", c.RadiusMiles)
	}
	if c.DurationHours < 1 || c.DurationHours > 24 {
		return fmt.Errorf("duration_hours must be between 1 and 24, got %g", c.DurationHours)
	}
	return nil
}
