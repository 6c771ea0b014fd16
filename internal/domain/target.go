package domain

import (
	"fmt"
	"strings"
)

// Target identifies where to fetch weather for: either a place name or a
// coordinate pair. The two variants encode into the same upstream query
// parameter, distinguished only by how Query renders them.
type Target interface {
	// Query renders the target as a WeatherAPI "q" parameter value.
	Query() string

	// IsZero reports whether the target carries no usable location.
	IsZero() bool
}

// NameTarget addresses weather by place name, e.g. "Paris".
type NameTarget struct {
	Name string
}

func (t NameTarget) Query() string {
	return strings.TrimSpace(t.Name)
}

func (t NameTarget) IsZero() bool {
	return strings.TrimSpace(t.Name) == ""
}

// CoordTarget addresses weather by WGS-84 coordinates.
type CoordTarget struct {
	Lat float64
	Lon float64
}

func (t CoordTarget) Query() string {
	return fmt.Sprintf("%f,%f", t.Lat, t.Lon)
}

func (t CoordTarget) IsZero() bool {
	return false
}
