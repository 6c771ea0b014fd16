package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/VIVEK9902/weather-app/internal/config"
	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/observability"
)

// WeatherAPI error codes that indicate the requested location has no match.
// 1006 is "no matching location found", 1003 is "parameter q not provided"
// (which the API also returns for effectively empty queries).
const (
	codeNoMatchingLocation = 1006
	codeMissingQuery       = 1003
)

// Client fetches weather data from the WeatherAPI.com forecast endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	days       int
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a WeatherAPI client with a circuit breaker on the
// request path. Transport errors and 5xx responses count as breaker
// failures; a not-found response does not.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey: cfg.WeatherAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.WeatherAPITimeout,
		},
		baseURL: cfg.WeatherAPIBaseURL,
		days:    cfg.ForecastDays,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchWeather retrieves the current conditions and daily forecast for a
// target. The returned snapshot carries temperatures in both units as
// supplied by the service; no conversion happens client-side.
func (c *Client) FetchWeather(ctx context.Context, target domain.Target, unit string) (domain.WeatherSnapshot, error) {
	resp, err := c.doForecast(ctx, target, unit, c.days, "weather")
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}
	return resp.toSnapshot(), nil
}

// FetchTrend retrieves the multi-day series consumed by the trend display.
// days is clamped to the 1–10 range WeatherAPI accepts.
func (c *Client) FetchTrend(ctx context.Context, target domain.Target, unit string, days int) ([]domain.ForecastDay, error) {
	if days < 1 {
		days = 1
	}
	if days > 10 {
		days = 10
	}

	resp, err := c.doForecast(ctx, target, unit, days, "trend")
	if err != nil {
		return nil, err
	}
	return resp.toSnapshot().Forecast, nil
}

func (c *Client) doForecast(ctx context.Context, target domain.Target, unit string, days int, endpoint string) (*forecastResponse, error) {
	params := url.Values{
		"key":    {c.apiKey},
		"q":      {target.Query()},
		"days":   {strconv.Itoa(days)},
		"aqi":    {"no"},
		"alerts": {"yes"},
		"units":  {unitParam(unit)},
	}
	fullURL := fmt.Sprintf("%s/forecast.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, body)
		}
		return httpResult{status: resp.StatusCode, body: body}, nil
	})
	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("weatherapi circuit open", "endpoint", endpoint)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	res := result.(httpResult)
	if res.status != http.StatusOK {
		return nil, mapAPIError(res)
	}

	var payload forecastResponse
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrServiceUnavailable, err)
	}
	return &payload, nil
}

// mapAPIError converts a non-200 WeatherAPI response into a domain sentinel.
func mapAPIError(res httpResult) error {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(res.body, &apiErr); err == nil {
		switch apiErr.Error.Code {
		case codeNoMatchingLocation, codeMissingQuery:
			return fmt.Errorf("%w: %s", domain.ErrLocationNotFound, apiErr.Error.Message)
		}
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrServiceUnavailable, res.status, res.body)
}

func unitParam(unit string) string {
	if unit == "F" {
		return "imperial"
	}
	return "metric"
}

type httpResult struct {
	status int
	body   []byte
}

// WeatherAPI forecast.json response types (subset).

type conditionNode struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type forecastResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC      float64       `json:"temp_c"`
		TempF      float64       `json:"temp_f"`
		FeelslikeC float64       `json:"feelslike_c"`
		FeelslikeF float64       `json:"feelslike_f"`
		Humidity   int           `json:"humidity"`
		PressureMb float64       `json:"pressure_mb"`
		WindKph    float64       `json:"wind_kph"`
		WindDir    string        `json:"wind_dir"`
		VisKm      float64       `json:"vis_km"`
		UV         float64       `json:"uv"`
		Condition  conditionNode `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MintempC  float64       `json:"mintemp_c"`
				MintempF  float64       `json:"mintemp_f"`
				AvgtempC  float64       `json:"avgtemp_c"`
				AvgtempF  float64       `json:"avgtemp_f"`
				MaxtempC  float64       `json:"maxtemp_c"`
				MaxtempF  float64       `json:"maxtemp_f"`
				Condition conditionNode `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (r *forecastResponse) toSnapshot() domain.WeatherSnapshot {
	snap := domain.WeatherSnapshot{
		City:    r.Location.Name,
		Region:  r.Location.Region,
		Country: r.Location.Country,

		TempC:      r.Current.TempC,
		TempF:      r.Current.TempF,
		FeelsLikeC: r.Current.FeelslikeC,
		FeelsLikeF: r.Current.FeelslikeF,

		Humidity:   r.Current.Humidity,
		PressureMb: r.Current.PressureMb,
		WindKph:    r.Current.WindKph,
		WindDir:    r.Current.WindDir,
		VisKm:      r.Current.VisKm,
		UV:         r.Current.UV,

		Condition: domain.FormatCondition(r.Current.Condition.Text),
		Icon:      normalizeIcon(r.Current.Condition.Icon),

		FetchedAt: domain.Now(),
	}

	for _, d := range r.Forecast.ForecastDay {
		snap.Forecast = append(snap.Forecast, domain.ForecastDay{
			Date:      d.Date,
			Condition: domain.FormatCondition(d.Day.Condition.Text),
			Icon:      normalizeIcon(d.Day.Condition.Icon),
			MinTempC:  d.Day.MintempC,
			MinTempF:  d.Day.MintempF,
			AvgTempC:  d.Day.AvgtempC,
			AvgTempF:  d.Day.AvgtempF,
			MaxTempC:  d.Day.MaxtempC,
			MaxTempF:  d.Day.MaxtempF,
		})
	}

	return snap
}

// normalizeIcon upgrades WeatherAPI's protocol-relative icon URLs
// ("//cdn.weatherapi.com/...") to https.
func normalizeIcon(icon string) string {
	if len(icon) >= 2 && icon[:2] == "//" {
		return "https:" + icon
	}
	return icon
}
