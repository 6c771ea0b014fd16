package domain

import "time"

// WeatherSnapshot is the complete result of one successful fetch.
// It is replaced wholesale by the next successful fetch, never mutated
// field by field, and cleared only by an explicit reset.
type WeatherSnapshot struct {
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`

	TempC      float64 `json:"temp_c"`
	TempF      float64 `json:"temp_f"`
	FeelsLikeC float64 `json:"feelslike_c"`
	FeelsLikeF float64 `json:"feelslike_f"`

	Humidity   int     `json:"humidity"`    // percent, 0–100
	PressureMb float64 `json:"pressure_mb"` // millibars
	WindKph    float64 `json:"wind_kph"`
	WindDir    string  `json:"wind_dir,omitempty"`
	VisKm      float64 `json:"vis_km"`
	UV         float64 `json:"uv"`

	Condition string `json:"condition"`
	Icon      string `json:"icon,omitempty"` // full https URL

	Forecast []ForecastDay `json:"forecast,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// ForecastDay is one entry of the daily forecast carried by a snapshot.
type ForecastDay struct {
	Date      string `json:"date"` // "2006-01-02"
	Condition string `json:"condition"`
	Icon      string `json:"icon,omitempty"`

	MinTempC float64 `json:"min_temp_c"`
	MinTempF float64 `json:"min_temp_f"`
	AvgTempC float64 `json:"avg_temp_c"`
	AvgTempF float64 `json:"avg_temp_f"`
	MaxTempC float64 `json:"max_temp_c"`
	MaxTempF float64 `json:"max_temp_f"`
}

// Clone returns a deep copy of the snapshot so callers can hand it out
// without exposing the session's authoritative state to mutation.
func (s *WeatherSnapshot) Clone() *WeatherSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.Forecast != nil {
		out.Forecast = make([]ForecastDay, len(s.Forecast))
		copy(out.Forecast, s.Forecast)
	}
	return &out
}
