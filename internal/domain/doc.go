// Package domain models the weather session's core data: snapshots,
// fetch targets, condition categories, and the error taxonomy.
//
// # Data Source
//
// Weather data comes from the WeatherAPI.com forecast endpoint
// (https://www.weatherapi.com/docs/), which returns current conditions
// and a multi-day forecast in a single response. Temperatures arrive in
// both Celsius and Fahrenheit; the client never converts units itself.
// Condition icons are returned protocol-relative ("//cdn.weatherapi.com/...")
// and are normalized to https during decoding.
//
// # Fetch Targets
//
// A fetch target is either a place name or a coordinate pair. WeatherAPI
// accepts both through the same "q" query parameter, so [NameTarget] and
// [CoordTarget] each render themselves via Query:
//
//	NameTarget{Name: "Paris"}           → "Paris"
//	CoordTarget{Lat: 28.61, Lon: 77.2}  → "28.610000,77.200000"
//
// # Condition Categories
//
// Free-text condition descriptions ("Patchy rain nearby", "Partly cloudy")
// are reduced to one of five categories for presentation theming:
// Sunny, Cloudy, Rain, Snow, Night. Classification is case-insensitive
// substring matching in a fixed priority order; rain-family terms are
// checked before "cloud" so that mixed descriptions theme as rain.
// Unrecognized or empty text defaults to Sunny. See [Classify].
//
// # Error Taxonomy
//
// Fetch failures collapse into three sentinels:
//
//	ErrLocationNotFound   — the upstream service has no match for the name
//	ErrServiceUnavailable — any other failure (network, server, decode)
//	ErrFallbackExhausted  — both the original and the default-city fetch failed
//
// The session layer converts all of these into view state; none of them
// crosses the component boundary as a panic or an unhandled error.
package domain
