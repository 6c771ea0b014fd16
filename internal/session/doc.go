// Package session implements the weather session controller: resolving
// the initial location, fetching weather with a one-level fallback to the
// default city, and keeping the persisted preferences (unit, theme,
// favorites, last-viewed city) consistent with the displayed data.
//
// # Fetch protocol
//
// Every user action that needs weather data runs one fetch cycle:
//
//	original attempt ──success──▶ snapshot replaced, city persisted
//	       │
//	     failure ──▶ interim message + exactly one fallback attempt
//	                 against the default city
//	                        │
//	                      failure ──▶ terminal message, loading off,
//	                                  previous snapshot kept
//
// The fallback never recurses: a failed fallback ends the cycle. A stale
// snapshot is always preferred to no snapshot, so terminal failures leave
// the current data untouched.
//
// Each cycle carries a monotonically increasing sequence number. A
// cycle's result is applied only while it is still the newest cycle;
// results from superseded cycles are discarded so a slow response can
// never overwrite a newer one.
//
// # Ownership
//
// Fetcher owns the authoritative weather state (snapshot, loading flag,
// error message, displayed city). Coordinator owns everything else the
// presentation layer sees (unit, theme, pending search text, local time)
// and is the only writer of the persisted preferences during a session.
package session
