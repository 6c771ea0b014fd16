package session

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

// --- weather client mock ---

type fetchCall struct {
	Query string
	Unit  string
}

// mockWeather records every fetch and answers through fn; without fn it
// echoes the query back as a successful snapshot.
type mockWeather struct {
	mu    sync.Mutex
	calls []fetchCall
	fn    func(query, unit string) (domain.WeatherSnapshot, error)
}

func (m *mockWeather) FetchWeather(_ context.Context, target domain.Target, unit string) (domain.WeatherSnapshot, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fetchCall{Query: target.Query(), Unit: unit})
	fn := m.fn
	m.mu.Unlock()

	if fn == nil {
		return snapFor(target.Query()), nil
	}
	return fn(target.Query(), unit)
}

func (m *mockWeather) callList() []fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

func snapFor(city string) domain.WeatherSnapshot {
	return domain.WeatherSnapshot{City: city, Condition: "Sunny", TempC: 20, TempF: 68}
}

// --- preference store mock ---

type fakePrefs struct {
	mu     sync.Mutex
	m      map[string]string
	getErr error
	setErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{m: make(map[string]string)}
}

func (p *fakePrefs) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return "", false, p.getErr
	}
	v, ok := p.m[key]
	return v, ok, nil
}

func (p *fakePrefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.m[key] = value
	return nil
}

func (p *fakePrefs) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
	return nil
}

func (p *fakePrefs) get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[key]
	return v, ok
}

// --- favorites store mock ---

type fakeFavorites struct {
	mu   sync.Mutex
	list []string
}

func (f *fakeFavorites) Add(name string) error {
	name = strings.TrimSpace(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" || slices.Contains(f.list, name) {
		return nil
	}
	f.list = append([]string{name}, f.list...)
	return nil
}

func (f *fakeFavorites) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = slices.DeleteFunc(f.list, func(s string) bool { return s == name })
	return nil
}

func (f *fakeFavorites) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = nil
	return nil
}

func (f *fakeFavorites) List() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.list), nil
}

// --- locator mock ---

type mockLocator struct {
	coords domain.CoordTarget
	err    error
}

func (m *mockLocator) Locate(_ context.Context) (domain.CoordTarget, error) {
	return m.coords, m.err
}
