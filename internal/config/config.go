package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings, populated from environment variables.
type Config struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	WeatherAPITimeout time.Duration
	ForecastDays      int

	DefaultCity  string
	FavoritesMax int

	HTTPAddr        string
	DBPath          string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// IP geolocation configuration (device-location analog).
	GeoIPEnabled bool
	GeoIPBaseURL string
	GeoIPTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	apiTimeout, err := parsePositiveDuration("WEATHERAPI_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geoipTimeout, err := parsePositiveDuration("GEOIP_TIMEOUT", "3s")
	if err != nil {
		return nil, err
	}

	forecastDays, err := parseForecastDays()
	if err != nil {
		return nil, err
	}

	geoipEnabled := true
	if v := os.Getenv("GEOIP_ENABLED"); v != "" {
		geoipEnabled = v == "true"
	}

	cfg := &Config{
		WeatherAPIKey:     os.Getenv("WEATHERAPI_KEY"),
		WeatherAPIBaseURL: envOrDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1"),
		WeatherAPITimeout: apiTimeout,
		ForecastDays:      forecastDays,

		DefaultCity:  envOrDefault("DEFAULT_CITY", "Delhi"),
		FavoritesMax: 12,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBPath:          envOrDefault("DB_PATH", "weather.db"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeoIPEnabled: geoipEnabled,
		GeoIPBaseURL: envOrDefault("GEOIP_URL", "http://ip-api.com/json"),
		GeoIPTimeout: geoipTimeout,
	}

	if cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHERAPI_KEY is required")
	}
	if cfg.DefaultCity == "" {
		return nil, errors.New("DEFAULT_CITY must not be empty")
	}

	return cfg, nil
}

func parseForecastDays() (int, error) {
	s := envOrDefault("FORECAST_DAYS", "3")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 10 {
		return 0, fmt.Errorf("invalid FORECAST_DAYS %q: must be 1-10", s)
	}
	return n, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, s)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
