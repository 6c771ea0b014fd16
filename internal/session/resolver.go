package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/VIVEK9902/weather-app/internal/domain"
)

// Locator is the device-location contract: a one-shot lookup of the
// current coordinates with a bounded wait.
type Locator interface {
	Locate(ctx context.Context) (domain.CoordTarget, error)
}

// Resolver determines the initial fetch target. It never fails: every
// resolution path ends in a usable target.
type Resolver struct {
	locator     Locator // nil when geolocation is disabled
	prefs       PreferenceStore
	defaultCity string
	logger      *slog.Logger
}

// NewResolver creates a resolver. locator may be nil to skip geolocation
// entirely.
func NewResolver(locator Locator, prefs PreferenceStore, defaultCity string, logger *slog.Logger) *Resolver {
	return &Resolver{
		locator:     locator,
		prefs:       prefs,
		defaultCity: defaultCity,
		logger:      logger,
	}
}

// Resolve returns, in order of preference: the device coordinates, the
// persisted last-viewed city, the default city. Geolocation denial or
// timeout is not an error; it falls through silently.
func (r *Resolver) Resolve(ctx context.Context) domain.Target {
	if r.locator != nil {
		coords, err := r.locator.Locate(ctx)
		if err == nil {
			r.logger.Info("resolved initial location from device", "lat", coords.Lat, "lon", coords.Lon)
			return coords
		}
		r.logger.Info("geolocation unavailable, using saved city", "error", err)
	}

	city, ok, err := r.prefs.Get(prefKeyLastCity)
	if err != nil {
		r.logger.Warn("read last-viewed city failed", "error", err)
	}
	if err == nil && ok && strings.TrimSpace(city) != "" {
		return domain.NameTarget{Name: city}
	}

	return domain.NameTarget{Name: r.defaultCity}
}
