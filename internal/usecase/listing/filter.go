package listing

import (
	"strings"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/page"
	"github.com/lotego/lotego/internal/domain/search/query"
	"github.com/lotego/lotego/internal/domain/search/result"
)

type predicate func(l *domlisting.Listing) bool

// FilterListings returns the page of listings matching every predicate of q,
// in the original collection order. It never mutates listings.
func FilterListings(listings []domlisting.Listing, q query.Query) result.Page {
	preds := predicates(q)

	matched := make([]domlisting.Listing, 0, len(listings))
next:
	for i := range listings {
		for _, p := range preds {
			if !p(&listings[i]) {
				continue next
			}
		}
		matched = append(matched, listings[i])
	}

	items, pg := page.Paginate(matched, q.Page, q.PageSize)
	return result.Page{Items: items, Pagination: pg}
}

// predicates builds the AND-ed filter chain: text, price, area, category.
func predicates(q query.Query) []predicate {
	preds := make([]predicate, 0, 4)

	if term := strings.ToLower(q.SearchTerm); term != "" {
		preds = append(preds, func(l *domlisting.Listing) bool {
			return matchesText(l, term)
		})
	}

	minPrice, maxPrice := q.MinPrice, q.MaxPrice
	preds = append(preds, func(l *domlisting.Listing) bool {
		return l.Price >= minPrice && l.Price <= maxPrice
	})

	minArea, maxArea := q.MinArea, q.MaxArea
	preds = append(preds, func(l *domlisting.Listing) bool {
		return l.Area >= minArea && l.Area <= maxArea
	})

	if cat, ok := q.CategoryFilter(); ok {
		preds = append(preds, func(l *domlisting.Listing) bool {
			return l.Category == cat
		})
	}
	return preds
}

// matchesText reports whether the lower-cased term is a substring of the title,
// city, state, composed "{city}, {state}" or the display location.
func matchesText(l *domlisting.Listing, term string) bool {
	fields := [...]string{l.Title, l.City, l.State, l.ComposedLocation(), l.Location}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
