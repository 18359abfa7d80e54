package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
	cityrepo "github.com/lotego/lotego/internal/repository/city"
	listingrepo "github.com/lotego/lotego/internal/repository/listing"
	cityuc "github.com/lotego/lotego/internal/usecase/city"
	healthuc "github.com/lotego/lotego/internal/usecase/health"
	listinguc "github.com/lotego/lotego/internal/usecase/listing"
)

// --- Mocks ---

// failingSource is a listing source whose backend is down.
type failingSource struct{}

var errBackendDown = errors.New("connection refused")

func (failingSource) List(_ context.Context) ([]domlisting.Listing, error) {
	return nil, errBackendDown
}

func (failingSource) Ping(_ context.Context) error { return errBackendDown }

// --- Helpers ---

type listingSource interface {
	listinguc.Source
	healthuc.SourcePinger
}

func newTestRouter(t *testing.T, src listingSource) http.Handler {
	t.Helper()
	return newLoggedRouter(t, src, zap.NewNop())
}

// newObservedRouter returns the seed router plus the log entries it writes at
// info level and above.
func newObservedRouter(t *testing.T) (chi.Router, *observer.ObservedLogs) {
	t.Helper()
	snap, err := listingrepo.Embedded()
	if err != nil {
		t.Fatalf("load listings: %v", err)
	}
	core, logs := observer.New(zapcore.InfoLevel)
	return newLoggedRouter(t, snap, zap.New(core)), logs
}

func newLoggedRouter(t *testing.T, src listingSource, logger *zap.Logger) chi.Router {
	t.Helper()

	cities, err := cityrepo.Embedded()
	if err != nil {
		t.Fatalf("load cities: %v", err)
	}

	srv := NewServer(
		listinguc.New(src, logger),
		cityuc.New(cities),
		healthuc.New(src, nil),
		logger,
	)
	return NewRouter(srv, logger)
}

func newSeedRouter(t *testing.T) http.Handler {
	t.Helper()
	snap, err := listingrepo.Embedded()
	if err != nil {
		t.Fatalf("load listings: %v", err)
	}
	return newTestRouter(t, snap)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
