package listing

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lotego/lotego/internal/domain"
	"github.com/lotego/lotego/internal/domain/geo"
	domlisting "github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/query"
	"github.com/lotego/lotego/internal/domain/search/result"
	logpkg "github.com/lotego/lotego/internal/logger"
	"github.com/lotego/lotego/internal/metrics"
)

// Nearby search defaults.
const (
	DefaultNearbyRadiusKm = 50.0
	DefaultNearbyLimit    = 10
	MaxNearbyLimit        = 50
)

// Service answers listing searches, detail lookups and proximity queries.
type Service struct {
	source   Source
	cache    PageCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// New creates a listing service without a result cache.
func New(source Source, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// WithCache enables the search page cache. A nil cache or ttl <= 0 leaves caching off.
func (s *Service) WithCache(c PageCache, ttl time.Duration) *Service {
	if c != nil && ttl > 0 {
		s.cache = c
		s.cacheTTL = ttl
	}
	return s
}

// Search filters and paginates the listing collection.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Page, error) {
	key := q.Key()
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, key); ok {
			return p, nil
		}
	}

	listings, err := s.source.List(ctx)
	if err != nil {
		return result.Page{}, fmt.Errorf("list listings: %w", err)
	}

	p := FilterListings(listings, q)
	metrics.SearchMatchedListings.Observe(float64(p.Pagination.TotalMatched))

	if s.cache != nil {
		s.cache.Set(ctx, key, p, s.cacheTTL)
	}

	logpkg.FromContext(ctx, s.logger).Debug("listing search",
		zap.String("query", key),
		zap.Int("matched", p.Pagination.TotalMatched),
		zap.Int("returned", len(p.Items)),
	)
	return p, nil
}

// Get returns the listing with the given id.
func (s *Service) Get(ctx context.Context, id int) (domlisting.Listing, error) {
	if id <= 0 {
		return domlisting.Listing{}, domain.ErrInvalidID
	}

	listings, err := s.source.List(ctx)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("list listings: %w", err)
	}

	for i := range listings {
		if listings[i].ID == id {
			return listings[i], nil
		}
	}
	return domlisting.Listing{}, fmt.Errorf("listing %d: %w", id, domain.ErrNotFound)
}

// Nearby returns other listings within radiusKm of the listing with the given id,
// closest first. radiusKm <= 0 (or NaN) and limit <= 0 fall back to defaults.
func (s *Service) Nearby(ctx context.Context, id int, radiusKm float64, limit int) ([]result.Nearby, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		radiusKm = DefaultNearbyRadiusKm
	}
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}

	listings, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	origin := -1
	for i := range listings {
		if listings[i].ID == id {
			origin = i
			break
		}
	}
	if origin < 0 {
		return nil, fmt.Errorf("listing %d: %w", id, domain.ErrNotFound)
	}

	from := listings[origin].Coordinates.Point()
	out := make([]result.Nearby, 0)
	for i := range listings {
		if i == origin {
			continue
		}
		d := geo.DistanceKm(from, listings[i].Coordinates.Point())
		if d <= radiusKm {
			out = append(out, result.Nearby{Listing: listings[i], DistanceKm: d})
		}
	}

	slices.SortStableFunc(out, func(a, b result.Nearby) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Categories counts listings per category, in category display order.
func (s *Service) Categories(ctx context.Context) ([]result.CategoryCount, error) {
	listings, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	counts := make(map[domlisting.Category]int)
	for i := range listings {
		counts[listings[i].Category]++
	}

	cats := domlisting.Categories()
	out := make([]result.CategoryCount, len(cats))
	for i, c := range cats {
		out[i] = result.CategoryCount{Category: c, Count: counts[c]}
	}
	return out, nil
}
