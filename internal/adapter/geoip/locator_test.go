package geoip

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VIVEK9902/weather-app/internal/observability"
)

func testLocator(baseURL string) *Locator {
	return &Locator{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestLocator_Locate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":28.6139,"lon":77.209}`))
	}))
	defer srv.Close()

	coords, err := testLocator(srv.URL).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 28.6139, coords.Lat)
	assert.Equal(t, 77.209, coords.Lon)
}

func TestLocator_Locate_FailStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	_, err := testLocator(srv.URL).Locate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestLocator_Locate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testLocator(srv.URL).Locate(context.Background())
	require.Error(t, err)
}

func TestLocator_Locate_TransportError(t *testing.T) {
	_, err := testLocator("http://127.0.0.1:1").Locate(context.Background())
	require.Error(t, err)
}
