package pagecache

import (
	"github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/page"
	"github.com/lotego/lotego/internal/domain/search/result"
)

// pageRow is the JSON form of a cached result page.
type pageRow struct {
	Items      []listingRow  `json:"items"`
	Pagination paginationRow `json:"pagination"`
}

type paginationRow struct {
	Page         int  `json:"page"`
	PageSize     int  `json:"page_size"`
	TotalMatched int  `json:"total_matched"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

type listingRow struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Area        float64  `json:"area"`
	Location    string   `json:"location,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     string   `json:"zip_code,omitempty"`
	Category    string   `json:"category"`
	Status      string   `json:"status,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Images      []string `json:"images,omitempty"`
	Features    []string `json:"features,omitempty"`
}

func pageToRow(p result.Page) pageRow {
	items := make([]listingRow, len(p.Items))
	for i := range p.Items {
		l := &p.Items[i]
		items[i] = listingRow{
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
			Category:    string(l.Category),
			Status:      l.Status,
			Lat:         l.Coordinates.Lat,
			Lng:         l.Coordinates.Lng,
			Images:      l.Images,
			Features:    l.Features,
		}
	}
	pg := p.Pagination
	return pageRow{
		Items: items,
		Pagination: paginationRow{
			Page:         pg.Page,
			PageSize:     pg.PageSize,
			TotalMatched: pg.TotalMatched,
			TotalPages:   pg.TotalPages,
			HasNext:      pg.HasNext,
			HasPrev:      pg.HasPrev,
		},
	}
}

func pageFromRow(r pageRow) result.Page {
	items := make([]listing.Listing, len(r.Items))
	for i, row := range r.Items {
		items[i] = listing.Listing{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Price:       row.Price,
			Area:        row.Area,
			Location:    row.Location,
			Address:     row.Address,
			City:        row.City,
			State:       row.State,
			ZipCode:     row.ZipCode,
			Category:    listing.Category(row.Category),
			Status:      row.Status,
			Coordinates: listing.Coordinates{Lat: row.Lat, Lng: row.Lng},
			Images:      row.Images,
			Features:    row.Features,
		}
	}
	return result.Page{
		Items: items,
		Pagination: page.Pagination{
			Page:         r.Pagination.Page,
			PageSize:     r.Pagination.PageSize,
			TotalMatched: r.Pagination.TotalMatched,
			TotalPages:   r.Pagination.TotalPages,
			HasNext:      r.Pagination.HasNext,
			HasPrev:      r.Pagination.HasPrev,
		},
	}
}
