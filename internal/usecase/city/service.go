package city

import (
	"context"
	"fmt"

	domcity "github.com/lotego/lotego/internal/domain/city"
	"github.com/lotego/lotego/internal/metrics"
)

// MaxLimit caps the number of suggestions a single request may ask for.
const MaxLimit = 50

// Service serves city suggestions.
type Service struct {
	source   Source
	maxLimit int
}

// New creates a city suggestion service.
func New(source Source) *Service {
	return &Service{source: source, maxLimit: MaxLimit}
}

// WithMaxLimit overrides the suggestion cap. Values <= 0 are ignored.
func (s *Service) WithMaxLimit(n int) *Service {
	if n > 0 {
		s.maxLimit = n
	}
	return s
}

// Suggest returns cities matching text. limit <= 0 means DefaultLimit; the
// resolved limit is capped at the service maximum.
func (s *Service) Suggest(ctx context.Context, text string, limit int) ([]domcity.Suggestion, error) {
	if text == "" {
		metrics.CitySuggestionsTotal.WithLabelValues("empty_query").Inc()
		return []domcity.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	cities, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}

	out := SuggestCities(cities, text, limit)
	if len(out) == 0 {
		metrics.CitySuggestionsTotal.WithLabelValues("no_match").Inc()
	} else {
		metrics.CitySuggestionsTotal.WithLabelValues("match").Inc()
	}
	return out, nil
}
