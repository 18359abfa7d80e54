package listing

import (
	"fmt"
	"math"
	"strings"

	"github.com/lotego/lotego/internal/domain"
	"github.com/lotego/lotego/internal/domain/geo"
)

// Category is the enumerated listing kind. On the wire it is called "type".
type Category string

// Category constants.
const (
	Lot  Category = "lot"
	Land Category = "land"
	Farm Category = "farm"

	// All disables category filtering in queries. It is never a listing category.
	All Category = "all"
)

// Categories returns every valid listing category in display order.
func Categories() []Category {
	return []Category{Lot, Land, Farm}
}

// IsValid checks if the category is one of the listing categories.
func (c Category) IsValid() bool {
	return c == Lot || c == Land || c == Farm
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Point converts c for distance math.
func (c Coordinates) Point() geo.Point {
	return geo.Point{Lat: c.Lat, Lng: c.Lng}
}

// Listing is a read-only land listing.
type Listing struct {
	ID          int
	Title       string
	Description string
	Price       float64
	Area        float64 // square meters
	Location    string  // display string, e.g. "Alphaville, Barueri - SP"
	Address     string
	City        string
	State       string
	ZipCode     string
	Category    Category
	Status      string
	Coordinates Coordinates
	Images      []string
	Features    []string
}

// ComposedLocation returns "{city}, {state}".
func (l *Listing) ComposedLocation() string {
	return l.City + ", " + l.State
}

// Validate checks the listing invariants: id > 0, price >= 0, area > 0, known
// category, non-empty title and coordinates within WGS84 bounds.
func (l *Listing) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", domain.ErrInvalidListing, l.ID)
	}
	if l.Price < 0 || math.IsNaN(l.Price) {
		return fmt.Errorf("%w: listing %d: price must be >= 0", domain.ErrInvalidListing, l.ID)
	}
	if l.Area <= 0 || math.IsNaN(l.Area) {
		return fmt.Errorf("%w: listing %d: area must be > 0", domain.ErrInvalidListing, l.ID)
	}
	if !l.Category.IsValid() {
		return fmt.Errorf("%w: listing %d: unknown category %q", domain.ErrInvalidListing, l.ID, l.Category)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: listing %d: title is required", domain.ErrInvalidListing, l.ID)
	}
	if !l.Coordinates.Point().Valid() {
		return fmt.Errorf("%w: listing %d: coordinates out of range (%v, %v)",
			domain.ErrInvalidListing, l.ID, l.Coordinates.Lat, l.Coordinates.Lng)
	}
	return nil
}

// ValidateCollection validates every listing and checks id uniqueness.
func ValidateCollection(listings []Listing) error {
	seen := make(map[int]struct{}, len(listings))
	for i := range listings {
		if err := listings[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[listings[i].ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidListing, listings[i].ID)
		}
		seen[listings[i].ID] = struct{}{}
	}
	return nil
}
