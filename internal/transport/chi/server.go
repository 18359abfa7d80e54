// Package chi exposes the listing and city use cases over HTTP with a chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lotego/lotego/internal/domain"
	domcity "github.com/lotego/lotego/internal/domain/city"
	"github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/query"
	"github.com/lotego/lotego/internal/domain/search/result"
	logpkg "github.com/lotego/lotego/internal/logger"
	healthuc "github.com/lotego/lotego/internal/usecase/health"
)

// listingService is the consumer interface for listing reads (ISP).
type listingService interface {
	Search(ctx context.Context, q query.Query) (result.Page, error)
	Get(ctx context.Context, id int) (listing.Listing, error)
	Nearby(ctx context.Context, id int, radiusKm float64, limit int) ([]result.Nearby, error)
	Categories(ctx context.Context) ([]result.CategoryCount, error)
}

type citySuggester interface {
	Suggest(ctx context.Context, text string, limit int) ([]domcity.Suggestion, error)
}

type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the HTTP API.
type Server struct {
	listings      listingService
	cities        citySuggester
	health        healthChecker
	maxPageSize   int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	listings listingService,
	cities citySuggester,
	health healthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		listings:    listings,
		cities:      cities,
		health:      health,
		maxPageSize: query.MaxPageSize,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest),
	}
	return s
}

// WithMaxPageSize overrides the page size ceiling. Values <= 0 are ignored.
func (s *Server) WithMaxPageSize(n int) *Server {
	if n > 0 {
		s.maxPageSize = n
	}
	return s
}

// SearchProperties handles GET /api/properties.
func (s *Server) SearchProperties(w http.ResponseWriter, r *http.Request) {
	q := query.FromParams(searchParams(r), s.maxPageSize)

	p, err := s.listings.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(p))
}

// GetProperty handles GET /api/properties/{id}.
func (s *Server) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	l, err := s.listings.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertyResponse{Property: listingToDTO(&l)})
}

// NearbyProperties handles GET /api/properties/{id}/nearby.
func (s *Server) NearbyProperties(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.listings.Nearby(r.Context(), id, optionalFloat(r, "radiusKm"), optionalInt(r, "limit"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearbyToDTO(items))
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.listings.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesToDTO(counts))
}

// SuggestCities handles GET /api/search/cities.
func (s *Server) SuggestCities(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.cities.Suggest(r.Context(), optionalString(r, "q"), optionalInt(r, "limit"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, citiesToDTO(suggestions))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.Debug("domain error", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
