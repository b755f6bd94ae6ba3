package location

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *GoogleGeocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGoogleGeocoder("test-key", server.URL, logger)
}

func TestGoogleGeocoder_ReverseGeocode(t *testing.T) {
	ctx := context.Background()

	t.Run("collects formatted addresses in order", func(t *testing.T) {
		geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "34.052200,-118.243700", r.URL.Query().Get("latlng"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Write([]byte(`{
				"status": "OK",
				"results": [
					{"formatted_address": "123 Main St, Los Angeles, CA"},
					{"formatted_address": "Los Angeles, CA"}
				]
			}`))
		})

		addresses, err := geocoder.ReverseGeocode(ctx, 34.0522, -118.2437)
		require.NoError(t, err)
		assert.Equal(t, []string{"123 Main St, Los Angeles, CA", "Los Angeles, CA"}, addresses)
	})

	t.Run("ZERO_RESULTS is an empty answer, not an error", func(t *testing.T) {
		geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		})

		addresses, err := geocoder.ReverseGeocode(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, addresses)
	})

	t.Run("denied request is an error", func(t *testing.T) {
		geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
		})

		_, err := geocoder.ReverseGeocode(ctx, 34.0522, -118.2437)
		assert.ErrorContains(t, err, "REQUEST_DENIED")
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		geocoder := NewGoogleGeocoder("test-key", server.URL, logger)

		_, err := geocoder.ReverseGeocode(ctx, 34.0522, -118.2437)
		assert.Error(t, err)
	})
}
