package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, cfg.WeatherAPIKey)
	assert.Equal(t, "https://api.weatherapi.com/v1", cfg.WeatherAPIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.WeatherAPITimeout)
	assert.Equal(t, 3, cfg.ForecastDays)
	assert.Equal(t, "Delhi", cfg.DefaultCity)
	assert.Equal(t, 12, cfg.FavoritesMax)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "weather.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.GeoIPEnabled)
	assert.Equal(t, "http://ip-api.com/json", cfg.GeoIPBaseURL)
	assert.Equal(t, 3*time.Second, cfg.GeoIPTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	t.Setenv("WEATHERAPI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("WEATHERAPI_TIMEOUT", "5s")
	t.Setenv("FORECAST_DAYS", "7")
	t.Setenv("DEFAULT_CITY", "Oslo")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEOIP_ENABLED", "false")
	t.Setenv("GEOIP_URL", "http://localhost:8888/json")
	t.Setenv("GEOIP_TIMEOUT", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.WeatherAPIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.WeatherAPITimeout)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.Equal(t, "Oslo", cfg.DefaultCity)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.GeoIPEnabled)
	assert.Equal(t, "http://localhost:8888/json", cfg.GeoIPBaseURL)
	assert.Equal(t, time.Second, cfg.GeoIPTimeout)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERAPI_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeGeoIPTimeout(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)
	t.Setenv("GEOIP_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOIP_TIMEOUT")
}

func TestLoad_InvalidForecastDays(t *testing.T) {
	t.Setenv("WEATHERAPI_KEY", testAPIKey)

	for _, v := range []string{"0", "11", "abc"} {
		t.Setenv("FORECAST_DAYS", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "FORECAST_DAYS")
	}
}
