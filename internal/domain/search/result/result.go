package result

import (
	"github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/page"
)

// Page is one page of filtered listings with its pagination metadata.
type Page struct {
	Items      []listing.Listing
	Pagination page.Pagination
}

// Nearby is a listing paired with its distance from a reference listing.
type Nearby struct {
	Listing    listing.Listing
	DistanceKm float64
}

// CategoryCount is the number of listings carrying a category.
type CategoryCount struct {
	Category listing.Category
	Count    int
}
