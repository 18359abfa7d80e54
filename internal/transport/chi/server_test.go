package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func propertyIDs(props []Listing) []int {
	ids := make([]int, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchProperties(t *testing.T) {
	h := newSeedRouter(t)

	tests := []struct {
		name     string
		target   string
		wantIDs  []int
		wantPage Pagination
	}{
		{
			name:     "defaults",
			target:   "/api/properties",
			wantIDs:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 15, TotalPages: 2, HasNext: true},
		},
		{
			name:     "search with pagination",
			target:   "/api/properties?search=UBERABA&limit=3&page=2",
			wantIDs:  []int{9, 10, 11},
			wantPage: Pagination{Page: 2, Limit: 3, Total: 10, TotalPages: 4, HasNext: true, HasPrev: true},
		},
		{
			name:     "category",
			target:   "/api/properties?type=farm",
			wantIDs:  []int{3, 9},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 2, TotalPages: 1},
		},
		{
			name:     "category all",
			target:   "/api/properties?type=all&limit=20",
			wantIDs:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			wantPage: Pagination{Page: 1, Limit: 20, Total: 15, TotalPages: 1},
		},
		{
			name:     "inclusive max price",
			target:   "/api/properties?maxPrice=320000",
			wantIDs:  []int{2, 6, 8, 13},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 4, TotalPages: 1},
		},
		{
			name:     "area range",
			target:   "/api/properties?minArea=2000&maxArea=5000",
			wantIDs:  []int{3, 5, 12, 15},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 4, TotalPages: 1},
		},
		{
			name:     "malformed numbers fall back",
			target:   "/api/properties?minPrice=abc&maxArea=&page=x&limit=-5",
			wantIDs:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 15, TotalPages: 2, HasNext: true},
		},
		{
			name:     "page past the end",
			target:   "/api/properties?page=99",
			wantIDs:  []int{},
			wantPage: Pagination{Page: 99, Limit: 10, Total: 15, TotalPages: 2, HasPrev: true},
		},
		{
			name:     "limit clamped",
			target:   "/api/properties?limit=1000&type=land",
			wantIDs:  []int{5, 12, 15},
			wantPage: Pagination{Page: 1, Limit: 100, Total: 3, TotalPages: 1},
		},
		{
			name:     "search by location display string",
			target:   "/api/properties?search=alphaville",
			wantIDs:  []int{1},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		},
		{
			name:     "no match",
			target:   "/api/properties?search=manaus",
			wantIDs:  []int{},
			wantPage: Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := get(t, h, tc.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200 (body %s)", rr.Code, rr.Body.String())
			}
			resp := decode[PropertyListResponse](t, rr)
			if got := propertyIDs(resp.Properties); !equalInts(got, tc.wantIDs) {
				t.Errorf("ids: got %v, want %v", got, tc.wantIDs)
			}
			if resp.Pagination != tc.wantPage {
				t.Errorf("pagination: got %+v, want %+v", resp.Pagination, tc.wantPage)
			}
		})
	}
}

func TestSearchProperties_EmptyPageIsArray(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/api/properties?page=50")
	if !strings.Contains(rr.Body.String(), `"properties":[]`) {
		t.Errorf("expected empty array, got %s", rr.Body.String())
	}
}

func TestSearchProperties_WireFormat(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/api/properties?search=alphaville")

	var body struct {
		Properties []map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := body.Properties[0]
	for _, key := range []string{
		"id", "title", "description", "price", "area", "location", "address",
		"city", "state", "zip_code", "type", "status", "coordinates", "images", "features",
	} {
		if _, ok := p[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if p["type"] != "lot" {
		t.Errorf("type: got %v, want lot", p["type"])
	}
}

func TestSearchProperties_SourceFailure(t *testing.T) {
	rr := get(t, newTestRouter(t, failingSource{}), "/api/properties")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Error != "internal error" {
		t.Errorf("error: got %q", resp.Error)
	}
}

func TestGetProperty(t *testing.T) {
	h := newSeedRouter(t)

	rr := get(t, h, "/api/properties/3")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	resp := decode[PropertyResponse](t, rr)
	if resp.Property.ID != 3 || resp.Property.Title != "Área Rural em Atibaia" || resp.Property.Type != "farm" {
		t.Errorf("unexpected property: %+v", resp.Property)
	}
}

func TestGetProperty_Errors(t *testing.T) {
	h := newSeedRouter(t)

	tests := []struct {
		target  string
		status  int
		message string
	}{
		{"/api/properties/999", http.StatusNotFound, "property not found"},
		{"/api/properties/abc", http.StatusBadRequest, "invalid property id"},
		{"/api/properties/0", http.StatusBadRequest, "invalid property id"},
		{"/api/properties/-4", http.StatusBadRequest, "invalid property id"},
	}
	for _, tc := range tests {
		rr := get(t, h, tc.target)
		if rr.Code != tc.status {
			t.Errorf("%s: status got %d, want %d", tc.target, rr.Code, tc.status)
			continue
		}
		if resp := decode[ErrorResponse](t, rr); resp.Error != tc.message {
			t.Errorf("%s: error got %q, want %q", tc.target, resp.Error, tc.message)
		}
	}
}

func TestNearbyProperties(t *testing.T) {
	h := newSeedRouter(t)

	rr := get(t, h, "/api/properties/6/nearby?radiusKm=5")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	resp := decode[NearbyResponse](t, rr)

	ids := make([]int, len(resp.Properties))
	for i, p := range resp.Properties {
		ids[i] = p.ID
		if i > 0 && p.DistanceKm < resp.Properties[i-1].DistanceKm {
			t.Errorf("not sorted by distance at %d", i)
		}
	}
	if want := []int{7, 13, 11, 8}; !equalInts(ids, want) {
		t.Errorf("ids: got %v, want %v", ids, want)
	}

	rr = get(t, h, "/api/properties/6/nearby?radiusKm=bad&limit=2")
	resp = decode[NearbyResponse](t, rr)
	if len(resp.Properties) != 2 {
		t.Errorf("limit: got %d results, want 2", len(resp.Properties))
	}

	if rr := get(t, h, "/api/properties/999/nearby"); rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}
}

func TestListCategories(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/api/categories")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	resp := decode[CategoriesResponse](t, rr)

	want := []CategoryCount{{"lot", 10}, {"land", 3}, {"farm", 2}}
	if len(resp.Categories) != len(want) {
		t.Fatalf("got %v, want %v", resp.Categories, want)
	}
	for i := range want {
		if resp.Categories[i] != want[i] {
			t.Errorf("category %d: got %+v, want %+v", i, resp.Categories[i], want[i])
		}
	}
}

func TestSuggestCities(t *testing.T) {
	h := newSeedRouter(t)

	rr := get(t, h, "/api/search/cities?q=sp")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	resp := decode[CitiesResponse](t, rr)

	var names []string
	for _, c := range resp.Cities {
		names = append(names, c.DisplayName)
	}
	want := "São Paulo, SP|Guarulhos, SP|Campinas, SP|Barueri, SP|Atibaia, SP"
	if got := strings.Join(names, "|"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	resp = decode[CitiesResponse](t, get(t, h, "/api/search/cities?q=br&limit=1"))
	if len(resp.Cities) != 1 || resp.Cities[0].Name != "Brasília" || resp.Cities[0].Region != "Centro-Oeste" {
		t.Errorf("unexpected cities: %+v", resp.Cities)
	}
}

func TestSuggestCities_EmptyQuery(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/api/search/cities")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"cities":[]}` {
		t.Errorf("got %s", got)
	}
}

func TestHealthCheck(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["listings"] != "ok" {
		t.Errorf("unexpected health: %+v", resp)
	}

	rr = get(t, newTestRouter(t, failingSource{}), "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	if resp := decode[HealthResponse](t, rr); resp.Status != "error" {
		t.Errorf("status: got %q, want error", resp.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/api/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Error != "not found" {
		t.Errorf("error: got %q", resp.Error)
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	rr := get(t, newSeedRouter(t), "/health")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := get(t, h, "/")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Error != "internal error" {
		t.Errorf("error: got %q", resp.Error)
	}
}

func TestRouter_PanicIsLoggedAsRequest(t *testing.T) {
	r, logs := newObservedRouter(t)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := get(t, r, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Error != "internal error" {
		t.Errorf("error: got %q", resp.Error)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on recovered request")
	}

	requests := logs.FilterMessage("http_request").All()
	if len(requests) != 1 {
		t.Fatalf("http_request lines: got %d, want 1", len(requests))
	}
	if status := requests[0].ContextMap()["status"]; status != int64(http.StatusInternalServerError) {
		t.Errorf("logged status: got %v, want 500", status)
	}

	panics := logs.FilterMessage("panic recovered").All()
	if len(panics) != 1 {
		t.Fatalf("panic lines: got %d, want 1", len(panics))
	}
	if id, _ := panics[0].ContextMap()["request_id"].(string); id == "" {
		t.Error("panic log should carry the request id")
	}
}
