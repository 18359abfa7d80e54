package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/lotego/lotego/internal/domain"
	"github.com/lotego/lotego/internal/domain/search/query"
)

// bindOptional binds an optional form-style query parameter into dest (a **T).
// Unparsable values leave dest nil so the caller's default applies.
func bindOptional(r *http.Request, name string, dest any) {
	_ = runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest)
}

func searchParams(r *http.Request) query.Params {
	var p query.Params
	bindOptional(r, "search", &p.Search)
	bindOptional(r, "minPrice", &p.MinPrice)
	bindOptional(r, "maxPrice", &p.MaxPrice)
	bindOptional(r, "minArea", &p.MinArea)
	bindOptional(r, "maxArea", &p.MaxArea)
	bindOptional(r, "type", &p.Type)
	bindOptional(r, "page", &p.Page)
	bindOptional(r, "limit", &p.Limit)
	return p
}

func listingID(r *http.Request) (int, error) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Required:      true,
		})
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func optionalInt(r *http.Request, name string) int {
	var v *int
	bindOptional(r, name, &v)
	if v == nil {
		return 0
	}
	return *v
}

func optionalFloat(r *http.Request, name string) float64 {
	var v *float64
	bindOptional(r, name, &v)
	if v == nil {
		return 0
	}
	return *v
}

func optionalString(r *http.Request, name string) string {
	var v *string
	bindOptional(r, name, &v)
	if v == nil {
		return ""
	}
	return *v
}
