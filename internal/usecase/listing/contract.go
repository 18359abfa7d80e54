package listing

import (
	"context"
	"time"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/domain/search/result"
)

// Source is the read-only listing collection.
type Source interface {
	List(ctx context.Context) ([]domlisting.Listing, error)
}

// PageCache stores search result pages by query key.
type PageCache interface {
	Get(ctx context.Context, key string) (result.Page, bool)
	Set(ctx context.Context, key string, p result.Page, ttl time.Duration)
}
