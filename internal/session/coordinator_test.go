package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VIVEK9902/weather-app/internal/domain"
)

type coordFixture struct {
	coord   *Coordinator
	client  *mockWeather
	prefs   *fakePrefs
	favs    *fakeFavorites
	locator *mockLocator
}

// newFixture wires a coordinator with a geolocation-denied locator by
// default; tests override the pieces they care about.
func newFixture() *coordFixture {
	client := &mockWeather{}
	prefs := newFakePrefs()
	favs := &fakeFavorites{}
	locator := &mockLocator{err: errors.New("permission denied")}

	logger := testLogger()
	metrics := testMetrics()
	fetcher := NewFetcher(client, prefs, testDefaultCity, metrics, logger)
	resolver := NewResolver(locator, prefs, testDefaultCity, logger)
	coord := NewCoordinator(fetcher, resolver, prefs, favs, metrics, logger)

	return &coordFixture{coord: coord, client: client, prefs: prefs, favs: favs, locator: locator}
}

func TestInit_GeolocationDeniedNoSavedCity(t *testing.T) {
	fx := newFixture()

	fx.coord.Init(context.Background())

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{Query: testDefaultCity, Unit: "C"}, calls[0])

	view := fx.coord.View()
	assert.Equal(t, testDefaultCity, view.City)
	assert.Equal(t, "C", view.Unit)
	assert.Equal(t, "dark", view.Theme)
}

func TestInit_GeolocationSuccessUsesCoordinates(t *testing.T) {
	fx := newFixture()
	fx.locator.err = nil
	fx.locator.coords = domain.CoordTarget{Lat: 28.6139, Lon: 77.209}

	fx.coord.Init(context.Background())

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, "28.613900,77.209000", calls[0].Query)
}

func TestInit_UsesPersistedCityAndPreferences(t *testing.T) {
	fx := newFixture()
	fx.prefs.m[prefKeyLastCity] = "Paris"
	fx.prefs.m[prefKeyUnit] = "F"
	fx.prefs.m[prefKeyTheme] = "light"

	fx.coord.Init(context.Background())

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{Query: "Paris", Unit: "F"}, calls[0])

	view := fx.coord.View()
	assert.Equal(t, "F", view.Unit)
	assert.Equal(t, "light", view.Theme)
}

func TestInit_IgnoresUnrecognizedPreferenceValues(t *testing.T) {
	fx := newFixture()
	fx.prefs.m[prefKeyUnit] = "K"
	fx.prefs.m[prefKeyTheme] = "solarized"

	fx.coord.Init(context.Background())

	view := fx.coord.View()
	assert.Equal(t, "C", view.Unit)
	assert.Equal(t, "dark", view.Theme)
}

func TestSearch_TrimsAndFetches(t *testing.T) {
	fx := newFixture()
	fx.coord.SetSearchText("  Tokyo ")

	require.NoError(t, fx.coord.Search(context.Background(), "  Tokyo "))

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{Query: "Tokyo", Unit: "C"}, calls[0])

	view := fx.coord.View()
	assert.Empty(t, view.SearchText, "search submit clears the pending text")
	assert.Equal(t, "Tokyo", view.City)
}

func TestSearch_RejectsEmpty(t *testing.T) {
	fx := newFixture()

	err := fx.coord.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyTarget)
	assert.Empty(t, fx.client.callList())
}

func TestSearch_NotFoundFallsBackAndKeepsMessage(t *testing.T) {
	fx := newFixture()
	fx.client.fn = func(query, _ string) (domain.WeatherSnapshot, error) {
		if query == "Atlantis" {
			return domain.WeatherSnapshot{}, domain.ErrLocationNotFound
		}
		return snapFor(query), nil
	}

	require.NoError(t, fx.coord.Search(context.Background(), "Atlantis"))

	view := fx.coord.View()
	assert.Equal(t, "City not found. Try again.", view.Error)
	assert.Equal(t, testDefaultCity, view.City)
	require.NotNil(t, view.Snapshot)
	assert.Equal(t, testDefaultCity, view.Snapshot.City)
}

func TestSelectFavorite_BehavesLikeSearch(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.coord.SelectFavorite(context.Background(), "Oslo"))

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, "Oslo", calls[0].Query)
}

func TestSetUnit_NoFetchBeforeFirstSnapshot(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.coord.SetUnit(context.Background(), "F"))

	assert.Empty(t, fx.client.callList(), "no snapshot yet, so no network action")
	assert.Equal(t, "F", fx.coord.Unit())

	saved, ok := fx.prefs.get(prefKeyUnit)
	assert.True(t, ok)
	assert.Equal(t, "F", saved)
}

func TestSetUnit_RefetchesDisplayedCityWithNewUnit(t *testing.T) {
	fx := newFixture()
	require.NoError(t, fx.coord.Search(context.Background(), "Paris"))
	fx.client.mu.Lock()
	fx.client.calls = nil
	fx.client.mu.Unlock()

	require.NoError(t, fx.coord.SetUnit(context.Background(), "F"))

	calls := fx.client.callList()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{Query: "Paris", Unit: "F"}, calls[0])
}

func TestSetUnit_RejectsInvalid(t *testing.T) {
	fx := newFixture()
	require.Error(t, fx.coord.SetUnit(context.Background(), "kelvin"))
	assert.Equal(t, "C", fx.coord.Unit())
}

func TestSetTheme_PersistsWithoutNetwork(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.coord.SetTheme("light"))

	assert.Empty(t, fx.client.callList())
	saved, ok := fx.prefs.get(prefKeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "light", saved)

	require.Error(t, fx.coord.SetTheme("blue"))
}

func TestResetPreferences(t *testing.T) {
	fx := newFixture()
	fx.prefs.m[prefKeyLastCity] = "Paris"
	require.NoError(t, fx.coord.SetUnit(context.Background(), "F"))
	require.NoError(t, fx.coord.SetTheme("light"))
	require.NoError(t, fx.favs.Add("Paris"))

	require.NoError(t, fx.coord.ResetPreferences())

	view := fx.coord.View()
	assert.Equal(t, "C", view.Unit)
	assert.Equal(t, "dark", view.Theme)

	_, ok := fx.prefs.get(prefKeyUnit)
	assert.False(t, ok)
	_, ok = fx.prefs.get(prefKeyTheme)
	assert.False(t, ok)

	// Location and favorites are untouched.
	city, ok := fx.prefs.get(prefKeyLastCity)
	assert.True(t, ok)
	assert.Equal(t, "Paris", city)
	assert.Equal(t, []string{"Paris"}, view.Favorites)
}

func TestFavorites_AddCurrentCity(t *testing.T) {
	fx := newFixture()

	// Nothing displayed yet: starring is a no-op.
	require.NoError(t, fx.coord.AddFavorite())
	list, _ := fx.favs.List()
	assert.Empty(t, list)

	require.NoError(t, fx.coord.Search(context.Background(), "Paris"))
	require.NoError(t, fx.coord.AddFavorite())

	view := fx.coord.View()
	assert.Equal(t, []string{"Paris"}, view.Favorites)

	require.NoError(t, fx.coord.RemoveFavorite("Paris"))
	view = fx.coord.View()
	assert.Empty(t, view.Favorites)
}

func TestView_CategoryFollowsSnapshot(t *testing.T) {
	fx := newFixture()
	fx.client.fn = func(query, _ string) (domain.WeatherSnapshot, error) {
		return domain.WeatherSnapshot{City: query, Condition: "Cloudy with patchy rain"}, nil
	}

	require.NoError(t, fx.coord.Search(context.Background(), "London"))

	view := fx.coord.View()
	assert.Equal(t, domain.CategoryRain, view.Category)
}

func TestView_DoesNotShareState(t *testing.T) {
	fx := newFixture()
	require.NoError(t, fx.coord.Search(context.Background(), "Paris"))

	view := fx.coord.View()
	view.Snapshot.City = "Mutated"

	assert.Equal(t, "Paris", fx.coord.View().Snapshot.City)
}

func TestCheckReadiness(t *testing.T) {
	fx := newFixture()

	require.Error(t, fx.coord.CheckReadiness(context.Background()))
	fx.coord.Init(context.Background())
	require.NoError(t, fx.coord.CheckReadiness(context.Background()))
}

func TestTrendParams(t *testing.T) {
	fx := newFixture()
	require.NoError(t, fx.coord.Search(context.Background(), "Paris"))
	require.NoError(t, fx.coord.SetUnit(context.Background(), "F"))

	city, unit := fx.coord.TrendParams()
	assert.Equal(t, "Paris", city)
	assert.Equal(t, "F", unit)
}

func TestSetLocalTime(t *testing.T) {
	fx := newFixture()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fx.coord.SetLocalTime(now)

	assert.Equal(t, now, fx.coord.View().LocalTime)
}
