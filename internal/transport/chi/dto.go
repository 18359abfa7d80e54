package chi

import (
	domcity "github.com/lotego/lotego/internal/domain/city"
	"github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/page"
	"github.com/lotego/lotego/internal/domain/search/result"
	healthuc "github.com/lotego/lotego/internal/usecase/health"
)

// Listing is the wire form of a listing. The category is exposed as "type".
type Listing struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Area        float64     `json:"area"`
	Location    string      `json:"location"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	ZipCode     string      `json:"zip_code"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	Coordinates Coordinates `json:"coordinates"`
	Images      []string    `json:"images"`
	Features    []string    `json:"features"`
}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pagination is the page metadata of a listing search.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// PropertyListResponse is returned by GET /api/properties.
type PropertyListResponse struct {
	Properties []Listing  `json:"properties"`
	Pagination Pagination `json:"pagination"`
}

// PropertyResponse is returned by GET /api/properties/{id}.
type PropertyResponse struct {
	Property Listing `json:"property"`
}

// NearbyListing is a listing with its distance from the reference listing.
type NearbyListing struct {
	Listing
	DistanceKm float64 `json:"distanceKm"`
}

// NearbyResponse is returned by GET /api/properties/{id}/nearby.
type NearbyResponse struct {
	Properties []NearbyListing `json:"properties"`
}

// CategoryCount is one filter pill.
type CategoryCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CategoriesResponse is returned by GET /api/categories.
type CategoriesResponse struct {
	Categories []CategoryCount `json:"categories"`
}

// CitySuggestion is one suggested city.
type CitySuggestion struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Region      string `json:"region"`
	DisplayName string `json:"displayName"`
}

// CitiesResponse is returned by GET /api/search/cities.
type CitiesResponse struct {
	Cities []CitySuggestion `json:"cities"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func listingToDTO(l *listing.Listing) Listing {
	return Listing{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Area:        l.Area,
		Location:    l.Location,
		Address:     l.Address,
		City:        l.City,
		State:       l.State,
		ZipCode:     l.ZipCode,
		Type:        string(l.Category),
		Status:      l.Status,
		Coordinates: Coordinates{Lat: l.Coordinates.Lat, Lng: l.Coordinates.Lng},
		Images:      nonNil(l.Images),
		Features:    nonNil(l.Features),
	}
}

func pageToDTO(p result.Page) PropertyListResponse {
	props := make([]Listing, len(p.Items))
	for i := range p.Items {
		props[i] = listingToDTO(&p.Items[i])
	}
	return PropertyListResponse{
		Properties: props,
		Pagination: paginationToDTO(p.Pagination),
	}
}

func paginationToDTO(p page.Pagination) Pagination {
	return Pagination{
		Page:       p.Page,
		Limit:      p.PageSize,
		Total:      p.TotalMatched,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func nearbyToDTO(items []result.Nearby) NearbyResponse {
	out := make([]NearbyListing, len(items))
	for i := range items {
		out[i] = NearbyListing{
			Listing:    listingToDTO(&items[i].Listing),
			DistanceKm: items[i].DistanceKm,
		}
	}
	return NearbyResponse{Properties: out}
}

func categoriesToDTO(counts []result.CategoryCount) CategoriesResponse {
	out := make([]CategoryCount, len(counts))
	for i, c := range counts {
		out[i] = CategoryCount{Type: string(c.Category), Count: c.Count}
	}
	return CategoriesResponse{Categories: out}
}

func citiesToDTO(suggestions []domcity.Suggestion) CitiesResponse {
	out := make([]CitySuggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = CitySuggestion{
			Name:        s.Name,
			State:       s.State,
			Region:      s.Region,
			DisplayName: s.DisplayName,
		}
	}
	return CitiesResponse{Cities: out}
}

func healthToDTO(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
