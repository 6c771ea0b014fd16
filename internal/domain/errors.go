package domain

import "errors"

var (
	// ErrLocationNotFound means the upstream service does not recognize
	// the requested place name.
	ErrLocationNotFound = errors.New("location not found")

	// ErrServiceUnavailable covers every other fetch failure: network
	// errors, server errors, and malformed responses.
	ErrServiceUnavailable = errors.New("weather service unavailable")

	// ErrFallbackExhausted means both the original fetch and the
	// automatic default-city fallback failed.
	ErrFallbackExhausted = errors.New("fallback fetch exhausted")

	// ErrEmptyTarget rejects a fetch or search with no usable location.
	ErrEmptyTarget = errors.New("empty target")
)
