package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/VIVEK9902/weather-app/internal/adapter/geoip"
	"github.com/VIVEK9902/weather-app/internal/adapter/httpadapter"
	"github.com/VIVEK9902/weather-app/internal/adapter/store"
	"github.com/VIVEK9902/weather-app/internal/adapter/weatherapi"
	"github.com/VIVEK9902/weather-app/internal/config"
	"github.com/VIVEK9902/weather-app/internal/observability"
	"github.com/VIVEK9902/weather-app/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	prefs := store.NewPreferences(db, logger)
	favorites := store.NewFavorites(db, cfg.FavoritesMax, logger)

	client := weatherapi.NewClient(cfg, metrics, logger)

	// Geolocation is feature-flagged via GEOIP_ENABLED / GEOIP_URL.
	var locator session.Locator
	if cfg.GeoIPEnabled {
		locator = geoip.NewLocator(cfg, metrics, logger)
		logger.Info("geoip location enabled", "base_url", cfg.GeoIPBaseURL, "timeout", cfg.GeoIPTimeout)
	} else {
		logger.Info("geoip location disabled")
	}

	fetcher := session.NewFetcher(client, prefs, cfg.DefaultCity, metrics, logger)
	resolver := session.NewResolver(locator, prefs, cfg.DefaultCity, logger)
	coord := session.NewCoordinator(fetcher, resolver, prefs, favorites, metrics, logger)

	clock := session.NewClock(clockwork.NewRealClock(), coord.SetLocalTime)

	srv := httpadapter.NewServer(cfg.HTTPAddr, coord, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the initial resolve-and-fetch in the background so the server
	// answers health checks while the first upstream call is in flight.
	go coord.Init(ctx)

	clock.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	clock.Stop()

	logger.Info("shutdown complete")
}
