package city

import (
	"context"

	domcity "github.com/lotego/lotego/internal/domain/city"
)

// Source is the read-only city reference list.
type Source interface {
	List(ctx context.Context) ([]domcity.City, error)
}
