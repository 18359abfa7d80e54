// Package page implements offset pagination over an ordered slice.
package page

// Pagination defaults.
const (
	DefaultPage = 1
	DefaultSize = 10
)

// Pagination describes one page of an ordered result set.
type Pagination struct {
	Page         int
	PageSize     int
	TotalMatched int
	TotalPages   int
	HasNext      bool
	HasPrev      bool
}

// Paginate returns the [start, end) window for a 1-based page.
// page < 1 is treated as DefaultPage and size < 1 as DefaultSize.
// Pages past the end yield an empty (non-nil) window, never an error.
func Paginate[T any](items []T, pageNum, size int) ([]T, Pagination) {
	if pageNum < 1 {
		pageNum = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}

	total := len(items)
	p := Pagination{
		Page:         pageNum,
		PageSize:     size,
		TotalMatched: total,
		TotalPages:   totalPages(total, size),
	}

	// (page-1)*size may overflow for absurd page numbers; those are past the end anyway.
	if pageNum-1 > total/size {
		p.HasPrev = true
		return []T{}, p
	}

	start := (pageNum - 1) * size
	end := start + size
	p.HasNext = end < total
	p.HasPrev = start > 0

	if start >= total {
		return []T{}, p
	}
	if end > total {
		end = total
	}
	return items[start:end], p
}

func totalPages(total, size int) int {
	n := total / size
	if total%size != 0 {
		n++
	}
	return n
}
