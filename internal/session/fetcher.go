package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/observability"
)

// User-facing messages for the fetch failure tiers.
const (
	msgNotFound          = "City not found. Try again."
	msgUnavailable       = "Service unavailable. Please try again later."
	msgFallbackExhausted = "Unable to fetch even fallback data."
)

// Persisted preference keys.
const (
	prefKeyUnit     = "unit"
	prefKeyTheme    = "theme"
	prefKeyLastCity = "last_city"
)

// WeatherClient is the upstream contract the fetcher consumes.
type WeatherClient interface {
	FetchWeather(ctx context.Context, target domain.Target, unit string) (domain.WeatherSnapshot, error)
}

// PreferenceStore is durable key-value persistence for user preferences.
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Fetcher orchestrates all weather retrieval and owns the authoritative
// current-weather state: snapshot, loading flag, error message, and the
// displayed city.
type Fetcher struct {
	client      WeatherClient
	prefs       PreferenceStore
	defaultCity string
	metrics     *observability.Metrics
	logger      *slog.Logger

	mu       sync.Mutex
	seq      uint64 // newest started fetch cycle
	snapshot *domain.WeatherSnapshot
	loading  bool
	errMsg   string
	city     string
}

// NewFetcher creates the fetch controller. defaultCity is the fixed
// fallback target used after an original fetch fails.
func NewFetcher(client WeatherClient, prefs PreferenceStore, defaultCity string, metrics *observability.Metrics, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:      client,
		prefs:       prefs,
		defaultCity: defaultCity,
		metrics:     metrics,
		logger:      logger,
	}
}

// Fetch runs one fetch attempt for target. When fallback is false this
// starts a new cycle: loading turns on, any prior error clears, and a
// failure triggers exactly one automatic fallback attempt against the
// default city. When fallback is true a failure is terminal.
//
// An empty or zero target is rejected without a request and without
// touching loading or error state.
func (f *Fetcher) Fetch(ctx context.Context, target domain.Target, unit string, fallback bool) {
	if target == nil || target.IsZero() {
		f.logger.Debug("ignoring fetch with empty target")
		return
	}

	f.mu.Lock()
	var id uint64
	if fallback {
		id = f.seq
	} else {
		f.seq++
		id = f.seq
		f.loading = true
		f.errMsg = ""
	}
	f.mu.Unlock()

	f.run(ctx, id, target, unit, fallback)
}

// run performs the attempt and, on original-attempt failure, chains the
// single fallback attempt within the same cycle.
func (f *Fetcher) run(ctx context.Context, id uint64, target domain.Target, unit string, fallback bool) {
	snap, err := f.client.FetchWeather(ctx, target, unit)
	if err == nil {
		f.applySuccess(id, snap, fallback)
		return
	}

	if fallback {
		err = fmt.Errorf("%w: %v", domain.ErrFallbackExhausted, err)
		f.logger.Error("fallback fetch failed", "city", f.defaultCity, "error", err)
		f.metrics.FetchesTotal.WithLabelValues("fallback_exhausted").Inc()
		f.applyExhausted(id)
		return
	}

	msg := msgUnavailable
	outcome := "unavailable"
	if errors.Is(err, domain.ErrLocationNotFound) {
		msg = msgNotFound
		outcome = "not_found"
	}
	f.logger.Warn("fetch failed, trying default city",
		"query", target.Query(),
		"fallback_city", f.defaultCity,
		"error", err,
	)
	f.metrics.FetchesTotal.WithLabelValues(outcome).Inc()
	f.setInterimError(id, msg)

	f.metrics.FallbackAttempts.Inc()
	f.run(ctx, id, domain.NameTarget{Name: f.defaultCity}, unit, true)
}

// applySuccess installs the new snapshot unless a newer cycle has
// superseded this one. A fallback success keeps the interim message so
// the user still sees why their requested city is not displayed.
func (f *Fetcher) applySuccess(id uint64, snap domain.WeatherSnapshot, fallback bool) {
	f.mu.Lock()
	if id != f.seq {
		f.mu.Unlock()
		f.metrics.StaleDiscards.Inc()
		f.logger.Debug("discarding superseded fetch result", "city", snap.City)
		return
	}
	f.snapshot = &snap
	f.city = snap.City
	f.loading = false
	if !fallback {
		f.errMsg = ""
	}
	f.mu.Unlock()

	f.metrics.FetchesTotal.WithLabelValues("success").Inc()

	if err := f.prefs.Set(prefKeyLastCity, snap.City); err != nil {
		f.metrics.StoreErrors.Inc()
		f.logger.Warn("persist last-viewed city failed", "error", err)
	}
}

// setInterimError records the original attempt's failure message while
// the fallback is still in flight; loading stays on.
func (f *Fetcher) setInterimError(id uint64, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.seq {
		return
	}
	f.errMsg = msg
}

// applyExhausted ends the cycle after the fallback also failed. The
// previous snapshot is deliberately kept.
func (f *Fetcher) applyExhausted(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.seq {
		return
	}
	f.errMsg = msgFallbackExhausted
	f.loading = false
}

// Snapshot returns a copy of the current snapshot, or nil before the
// first success.
func (f *Fetcher) Snapshot() *domain.WeatherSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot.Clone()
}

// HasSnapshot reports whether any fetch has succeeded yet.
func (f *Fetcher) HasSnapshot() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot != nil
}

// City returns the currently displayed city name.
func (f *Fetcher) City() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.city
}

// setCity updates the displayed city optimistically, before the fetch
// for it resolves.
func (f *Fetcher) setCity(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.city = name
}

// state returns one consistent view of the fetch state.
func (f *Fetcher) state() (snap *domain.WeatherSnapshot, loading bool, errMsg, city string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot.Clone(), f.loading, f.errMsg, f.city
}
