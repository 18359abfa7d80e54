package city

import (
	"strings"

	domcity "github.com/lotego/lotego/internal/domain/city"
)

// DefaultLimit is the number of suggestions returned when no limit is given.
const DefaultLimit = 10

// SuggestCities returns up to limit cities whose name or state contains text,
// case-insensitively, in collection order. Empty text yields no suggestions.
// limit <= 0 means DefaultLimit.
func SuggestCities(cities []domcity.City, text string, limit int) []domcity.Suggestion {
	out := make([]domcity.Suggestion, 0)
	needle := strings.ToLower(text)
	if needle == "" {
		return out
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	for _, c := range cities {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.State), needle) {
			out = append(out, domcity.NewSuggestion(c))
		}
	}
	return out
}
