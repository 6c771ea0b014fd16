// Package geoip approximates device geolocation with a one-shot IP
// lookup. It is the session's stand-in for a browser geolocation prompt:
// best effort, bounded wait, and never fatal — a failure simply makes the
// resolver fall back to the last-viewed or default city.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VIVEK9902/weather-app/internal/config"
	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/observability"
)

// Locator resolves the current public IP to coordinates via ip-api.com
// (or a compatible endpoint).
type Locator struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewLocator creates an IP geolocation client. The configured timeout is
// the bounded wait for the whole lookup.
func NewLocator(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Locator {
	return &Locator{
		httpClient: &http.Client{
			Timeout: cfg.GeoIPTimeout,
		},
		baseURL: cfg.GeoIPBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Locate performs the one-shot lookup and returns the resulting
// coordinates. Any failure (transport, non-success status, malformed
// body) is returned as an error for the caller to fall back on.
func (l *Locator) Locate(ctx context.Context) (domain.CoordTarget, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return domain.CoordTarget{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := l.httpClient.Do(req)
	l.metrics.UpstreamDuration.WithLabelValues("geoip").Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.CoordTarget{}, fmt.Errorf("geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.CoordTarget{}, fmt.Errorf("geoip API error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.CoordTarget{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "success" {
		return domain.CoordTarget{}, fmt.Errorf("geoip lookup failed: %s", payload.Message)
	}

	return domain.CoordTarget{Lat: payload.Lat, Lon: payload.Lon}, nil
}
