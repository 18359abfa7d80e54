package listing

import (
	"context"
	"fmt"
	"time"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/result"
)

// --- Mocks ---

type mockSource struct {
	listings []domlisting.Listing
	err      error
	calls    int
}

func (m *mockSource) List(_ context.Context) ([]domlisting.Listing, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.listings, nil
}

type mockCache struct {
	pages   map[string]result.Page
	lastTTL time.Duration
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{pages: make(map[string]result.Page)}
}

func (m *mockCache) Get(_ context.Context, key string) (result.Page, bool) {
	p, ok := m.pages[key]
	return p, ok
}

func (m *mockCache) Set(_ context.Context, key string, p result.Page, ttl time.Duration) {
	m.pages[key] = p
	m.lastTTL = ttl
	m.sets++
}

// --- Fixtures ---

// twoListings is the pair used by the Barueri/Brasília scenarios.
func twoListings() []domlisting.Listing {
	return []domlisting.Listing{
		{
			ID: 1, Title: "Terreno em Alphaville", Price: 450000, Area: 450,
			City: "Barueri", State: "SP", Category: domlisting.Lot,
			Location:    "Alphaville, Barueri - SP",
			Coordinates: domlisting.Coordinates{Lat: -23.5041, Lng: -46.8509},
		},
		{
			ID: 2, Title: "Lote no Jardim Botânico", Price: 320000, Area: 360,
			City: "Brasília", State: "DF", Category: domlisting.Lot,
			Location:    "Jardim Botânico, Brasília - DF",
			Coordinates: domlisting.Coordinates{Lat: -15.8697, Lng: -47.8292},
		},
	}
}

// uberabaListings are close to each other; the last one is far away in Barueri.
func uberabaListings() []domlisting.Listing {
	return []domlisting.Listing{
		{ID: 6, Title: "Lote Centro", Price: 180000, Area: 300, City: "Uberaba", State: "MG",
			Category: domlisting.Lot, Coordinates: domlisting.Coordinates{Lat: -19.7482, Lng: -47.9317}},
		{ID: 9, Title: "Sítio Rural", Price: 850000, Area: 20000, City: "Uberaba", State: "MG",
			Category: domlisting.Farm, Coordinates: domlisting.Coordinates{Lat: -19.8123, Lng: -47.8567}},
		{ID: 10, Title: "Lote Industrial", Price: 380000, Area: 1200, City: "Uberaba", State: "MG",
			Category: domlisting.Lot, Coordinates: domlisting.Coordinates{Lat: -19.7789, Lng: -47.8945}},
		{ID: 12, Title: "Chácara Urbana", Price: 580000, Area: 2500, City: "Uberaba", State: "MG",
			Category: domlisting.Land, Coordinates: domlisting.Coordinates{Lat: -19.7012, Lng: -47.9012}},
		{ID: 1, Title: "Terreno em Alphaville", Price: 450000, Area: 450, City: "Barueri", State: "SP",
			Category: domlisting.Lot, Coordinates: domlisting.Coordinates{Lat: -23.5041, Lng: -46.8509}},
	}
}

// numberedListings returns n listings with ids 1..n and varied attributes.
func numberedListings(n int) []domlisting.Listing {
	cats := domlisting.Categories()
	states := []string{"SP", "MG", "DF"}
	out := make([]domlisting.Listing, n)
	for i := range out {
		id := i + 1
		out[i] = domlisting.Listing{
			ID:       id,
			Title:    fmt.Sprintf("Listing %d", id),
			Price:    float64(100000 + 50000*(id%7)),
			Area:     float64(200 + 100*(id%5)),
			City:     fmt.Sprintf("City %d", id%4),
			State:    states[id%len(states)],
			Category: cats[id%len(cats)],
		}
	}
	return out
}

func ids(ls []domlisting.Listing) []int {
	out := make([]int, len(ls))
	for i := range ls {
		out[i] = ls[i].ID
	}
	return out
}
