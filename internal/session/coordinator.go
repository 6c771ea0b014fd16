package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/observability"
)

// Valid preference values and their first-run defaults.
const (
	UnitCelsius    = "C"
	UnitFahrenheit = "F"
	ThemeDark      = "dark"
	ThemeLight     = "light"
)

// FavoritesStore is the durable, ordered, size-bounded favorites list.
type FavoritesStore interface {
	Add(name string) error
	Remove(name string) error
	Clear() error
	List() ([]string, error)
}

// View is the composed, immutable state handed to the presentation layer.
type View struct {
	Snapshot   *domain.WeatherSnapshot `json:"snapshot,omitempty"`
	Loading    bool                    `json:"loading"`
	Error      string                  `json:"error,omitempty"`
	City       string                  `json:"city"`
	SearchText string                  `json:"search_text,omitempty"`
	Unit       string                  `json:"unit"`
	Theme      string                  `json:"theme"`
	Category   domain.Category         `json:"category"`
	Favorites  []string                `json:"favorites"`
	LocalTime  time.Time               `json:"local_time"`
}

// Coordinator is the top-level session owner. It wires the fetcher,
// resolver, and stores together, mirrors the persisted preferences in
// memory, and exposes the composed view state.
type Coordinator struct {
	fetcher   *Fetcher
	resolver  *Resolver
	prefs     PreferenceStore
	favorites FavoritesStore
	metrics   *observability.Metrics
	logger    *slog.Logger

	mu         sync.Mutex
	unit       string
	theme      string
	searchText string
	localTime  time.Time

	ready atomic.Bool
}

// NewCoordinator creates the session coordinator with first-run defaults
// in place until Init loads the persisted preferences.
func NewCoordinator(fetcher *Fetcher, resolver *Resolver, prefs PreferenceStore, favorites FavoritesStore, metrics *observability.Metrics, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		fetcher:   fetcher,
		resolver:  resolver,
		prefs:     prefs,
		favorites: favorites,
		metrics:   metrics,
		logger:    logger,
		unit:      UnitCelsius,
		theme:     ThemeDark,
	}
}

// Init runs the startup sequence: load persisted unit and theme, resolve
// the initial location, and issue the first fetch. It blocks until the
// first fetch cycle resolves.
func (c *Coordinator) Init(ctx context.Context) {
	c.loadPreferences()

	target := c.resolver.Resolve(ctx)
	if name, ok := target.(domain.NameTarget); ok {
		c.fetcher.setCity(name.Query())
	}
	c.fetcher.Fetch(ctx, target, c.Unit(), false)

	c.ready.Store(true)
	c.metrics.SessionReady.Set(1)
	c.logger.Info("session initialized", "city", c.fetcher.City(), "unit", c.Unit(), "theme", c.Theme())
}

// loadPreferences restores unit and theme from the store, keeping the
// defaults when a key is absent or holds an unrecognized value.
func (c *Coordinator) loadPreferences() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok, err := c.prefs.Get(prefKeyUnit); err != nil {
		c.storeWarn("load unit preference", err)
	} else if ok && (v == UnitCelsius || v == UnitFahrenheit) {
		c.unit = v
	}

	if v, ok, err := c.prefs.Get(prefKeyTheme); err != nil {
		c.storeWarn("load theme preference", err)
	} else if ok && (v == ThemeDark || v == ThemeLight) {
		c.theme = v
	}
}

// Search fetches weather for a city the user typed. The input is
// trimmed; an empty search is rejected without any fetch. The pending
// search text is cleared and the displayed city updated regardless of
// how the fetch itself turns out.
func (c *Coordinator) Search(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("search: %w", domain.ErrEmptyTarget)
	}

	c.mu.Lock()
	c.searchText = ""
	c.mu.Unlock()
	c.fetcher.setCity(name)

	c.fetcher.Fetch(ctx, domain.NameTarget{Name: name}, c.Unit(), false)
	return nil
}

// SelectFavorite fetches weather for a city picked from the favorites
// panel. Identical semantics to Search.
func (c *Coordinator) SelectFavorite(ctx context.Context, name string) error {
	return c.Search(ctx, name)
}

// SetSearchText updates the pending search text. Typing never triggers
// a fetch; only Search does.
func (c *Coordinator) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchText = text
}

// SetUnit switches the measurement unit, persists it, and re-fetches the
// displayed city with the new unit — but only once a snapshot exists;
// before the first successful fetch it performs no network action.
func (c *Coordinator) SetUnit(ctx context.Context, unit string) error {
	if unit != UnitCelsius && unit != UnitFahrenheit {
		return fmt.Errorf("invalid unit %q", unit)
	}

	c.mu.Lock()
	c.unit = unit
	c.mu.Unlock()

	if err := c.prefs.Set(prefKeyUnit, unit); err != nil {
		c.storeWarn("persist unit", err)
	}

	if c.fetcher.HasSnapshot() {
		c.fetcher.Fetch(ctx, domain.NameTarget{Name: c.fetcher.City()}, unit, false)
	}
	return nil
}

// SetTheme switches the display theme and persists it. No network effect.
func (c *Coordinator) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("invalid theme %q", theme)
	}

	c.mu.Lock()
	c.theme = theme
	c.mu.Unlock()

	if err := c.prefs.Set(prefKeyTheme, theme); err != nil {
		c.storeWarn("persist theme", err)
	}
	return nil
}

// ResetPreferences restores unit and theme to their defaults and clears
// their persisted entries. The last-viewed city and the favorites list
// are untouched.
func (c *Coordinator) ResetPreferences() error {
	c.mu.Lock()
	c.unit = UnitCelsius
	c.theme = ThemeDark
	c.mu.Unlock()

	var errs []error
	if err := c.prefs.Delete(prefKeyUnit); err != nil {
		c.storeWarn("clear unit", err)
		errs = append(errs, err)
	}
	if err := c.prefs.Delete(prefKeyTheme); err != nil {
		c.storeWarn("clear theme", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AddFavorite stars the currently displayed city. Adding before any city
// is displayed is a no-op.
func (c *Coordinator) AddFavorite() error {
	return c.favorites.Add(c.fetcher.City())
}

// RemoveFavorite unstars a city.
func (c *Coordinator) RemoveFavorite(name string) error {
	return c.favorites.Remove(name)
}

// ClearFavorites empties the favorites list.
func (c *Coordinator) ClearFavorites() error {
	return c.favorites.Clear()
}

// SetLocalTime records the clock tick shown in the view.
func (c *Coordinator) SetLocalTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.localTime = t
}

// Unit returns the selected measurement unit.
func (c *Coordinator) Unit() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unit
}

// Theme returns the selected display theme.
func (c *Coordinator) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// TrendParams supplies the displayed city and unit to the trend-display
// collaborator, which issues its own multi-day series request.
func (c *Coordinator) TrendParams() (city, unit string) {
	return c.fetcher.City(), c.Unit()
}

// View assembles the composed state for the presentation layer. The
// returned value shares nothing with the session's internal state.
func (c *Coordinator) View() View {
	snap, loading, errMsg, city := c.fetcher.state()

	favs, err := c.favorites.List()
	if err != nil {
		c.storeWarn("list favorites", err)
	}

	var condition string
	if snap != nil {
		condition = snap.Condition
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Snapshot:   snap,
		Loading:    loading,
		Error:      errMsg,
		City:       city,
		SearchText: c.searchText,
		Unit:       c.unit,
		Theme:      c.theme,
		Category:   domain.Classify(condition),
		Favorites:  favs,
		LocalTime:  c.localTime,
	}
}

// CheckReadiness returns nil once the initial fetch cycle has resolved.
func (c *Coordinator) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("session has not completed its initial fetch yet")
	}
	return nil
}

func (c *Coordinator) storeWarn(op string, err error) {
	c.metrics.StoreErrors.Inc()
	c.logger.Warn(op+" failed", "error", err)
}
