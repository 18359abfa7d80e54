// Package query defines the listing search query and the fallback rules
// that turn loosely-typed request parameters into typed bounds.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/page"
)

// MaxPageSize is the default ceiling applied to request page sizes.
const MaxPageSize = 100

// Query is a normalized listing search query.
type Query struct {
	SearchTerm string
	MinPrice   float64
	MaxPrice   float64
	MinArea    float64
	MaxArea    float64
	Category   listing.Category // empty or listing.All disables the filter
	Page       int
	PageSize   int
}

// Default returns a query that matches every listing, first page.
func Default() Query {
	return Query{
		MinPrice: 0,
		MaxPrice: math.Inf(1),
		MinArea:  0,
		MaxArea:  math.Inf(1),
		Page:     page.DefaultPage,
		PageSize: page.DefaultSize,
	}
}

// Params holds raw, optional request parameters. A nil field means "absent".
type Params struct {
	Search   *string
	MinPrice *float64
	MaxPrice *float64
	MinArea  *float64
	MaxArea  *float64
	Type     *string
	Page     *int
	Limit    *int
}

// FromParams applies the fallback table:
//
//	absent     -> default
//	NaN        -> default
//	page < 1   -> 1
//	limit < 1  -> page.DefaultSize
//	limit > max -> max (when maxPageSize > 0)
//	otherwise  -> value as given
func FromParams(p Params, maxPageSize int) Query {
	q := Default()

	if p.Search != nil {
		q.SearchTerm = *p.Search
	}
	q.MinPrice = bound(p.MinPrice, q.MinPrice)
	q.MaxPrice = bound(p.MaxPrice, q.MaxPrice)
	q.MinArea = bound(p.MinArea, q.MinArea)
	q.MaxArea = bound(p.MaxArea, q.MaxArea)

	if p.Type != nil {
		q.Category = listing.Category(*p.Type)
	}
	if p.Page != nil && *p.Page >= 1 {
		q.Page = *p.Page
	}
	if p.Limit != nil && *p.Limit >= 1 {
		q.PageSize = *p.Limit
	}
	if maxPageSize > 0 && q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

func bound(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return def
	}
	return *v
}

// CategoryFilter returns the category to match and whether filtering is enabled.
func (q Query) CategoryFilter() (listing.Category, bool) {
	if q.Category == "" || q.Category == listing.All {
		return "", false
	}
	return q.Category, true
}

// Key returns a canonical string for the query, stable across equivalent inputs.
func (q Query) Key() string {
	cat, _ := q.CategoryFilter()
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strconv.Quote(strings.ToLower(q.SearchTerm)))
	b.WriteString("|price=")
	b.WriteString(formatFloat(q.MinPrice))
	b.WriteByte(':')
	b.WriteString(formatFloat(q.MaxPrice))
	b.WriteString("|area=")
	b.WriteString(formatFloat(q.MinArea))
	b.WriteByte(':')
	b.WriteString(formatFloat(q.MaxArea))
	b.WriteString("|type=")
	b.WriteString(string(cat))
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("|size=")
	b.WriteString(strconv.Itoa(q.PageSize))
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
