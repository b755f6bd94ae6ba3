package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Geocoder abstracts the reverse-geocoding collaborator. Implementations
// return formatted addresses ordered by relevance; an empty slice is a valid
// answer, not an error.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) ([]string, error)
}

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder calls the Google Geocoding API.
type GoogleGeocoder struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewGoogleGeocoder(apiKey, baseURL string, logger *slog.Logger) *GoogleGeocoder {
	if baseURL == "" {
		baseURL = defaultGeocodeURL
	}
	return &GoogleGeocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type geocodeAPIResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) ([]string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload geocodeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	// ZERO_RESULTS is an empty answer, every other non-OK status is a failure.
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("geocode returned status %s", payload.Status)
	}

	addresses := make([]string, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.FormattedAddress != "" {
			addresses = append(addresses, r.FormattedAddress)
		}
	}
	return addresses, nil
}
