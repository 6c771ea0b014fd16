package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the presentation-facing reduction of a free-text weather
// condition. The frontend keys its background theme off this value.
type Category string

const (
	CategorySunny  Category = "sunny"
	CategoryCloudy Category = "cloudy"
	CategoryRain   Category = "rain"
	CategorySnow   Category = "snow"
	CategoryNight  Category = "night"
)

// Term families checked by Classify, in priority order. Rain terms are
// matched before "cloud" so that descriptions like "cloudy with rain
// showers" theme as rain, not cloudy.
var (
	sunnyTerms = []string{"sun", "clear"}
	rainTerms  = []string{"rain", "drizzle", "thunder", "shower"}
	snowTerms  = []string{"snow", "sleet"}
)

// Classify maps a free-text condition description to a Category.
// Matching is deterministic, case-insensitive substring matching in a
// fixed priority order: sunny terms, rain terms, "cloud", snow terms,
// "night". Empty or unrecognized text defaults to CategorySunny.
func Classify(condition string) Category {
	text := strings.ToLower(condition)

	switch {
	case containsAny(text, sunnyTerms):
		return CategorySunny
	case containsAny(text, rainTerms):
		return CategoryRain
	case strings.Contains(text, "cloud"):
		return CategoryCloudy
	case containsAny(text, snowTerms):
		return CategorySnow
	case strings.Contains(text, "night"):
		return CategoryNight
	default:
		return CategorySunny
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

var conditionCaser = cases.Title(language.English)

// FormatCondition normalizes a condition description for display,
// e.g. "patchy rain nearby" → "Patchy Rain Nearby".
func FormatCondition(condition string) string {
	return conditionCaser.String(strings.TrimSpace(condition))
}
