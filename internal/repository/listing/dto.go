package listing

import (
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
)

// yamlRow is the YAML form of a listing in seed and file sources.
type yamlRow struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	Area        float64  `yaml:"area"`
	Location    string   `yaml:"location"`
	Address     string   `yaml:"address"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	ZipCode     string   `yaml:"zip_code"`
	Type        string   `yaml:"type"`
	Status      string   `yaml:"status"`
	Coordinates struct {
		Lat float64 `yaml:"lat"`
		Lng float64 `yaml:"lng"`
	} `yaml:"coordinates"`
	Images   []string `yaml:"images"`
	Features []string `yaml:"features"`
}

func (r yamlRow) toDomain() domlisting.Listing {
	return domlisting.Listing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Area:        r.Area,
		Location:    r.Location,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		ZipCode:     r.ZipCode,
		Category:    domlisting.Category(r.Type),
		Status:      r.Status,
		Coordinates: domlisting.Coordinates{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng},
		Images:      r.Images,
		Features:    r.Features,
	}
}

// sqlColumns is shared by both SQL dialects; list columns differ in type only.
const sqlColumns = `id, title, description, price, area, location, address,
	city, state, zip_code, type, status, lat, lng`

// sqlRow holds the scalar columns of the listings table.
type sqlRow struct {
	ID          int     `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Area        float64 `db:"area"`
	Location    string  `db:"location"`
	Address     string  `db:"address"`
	City        string  `db:"city"`
	State       string  `db:"state"`
	ZipCode     string  `db:"zip_code"`
	Type        string  `db:"type"`
	Status      string  `db:"status"`
	Lat         float64 `db:"lat"`
	Lng         float64 `db:"lng"`
}

func (r sqlRow) toDomain(images, features []string) domlisting.Listing {
	return domlisting.Listing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Area:        r.Area,
		Location:    r.Location,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		ZipCode:     r.ZipCode,
		Category:    domlisting.Category(r.Type),
		Status:      r.Status,
		Coordinates: domlisting.Coordinates{Lat: r.Lat, Lng: r.Lng},
		Images:      images,
		Features:    features,
	}
}

// sqliteRow stores list columns as JSON text.
type sqliteRow struct {
	sqlRow
	ImagesJSON   string `db:"images_json"`
	FeaturesJSON string `db:"features_json"`
}

func (r sqliteRow) listing() (domlisting.Listing, error) {
	images, err := decodeList(r.ImagesJSON)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("listing %d: images: %w", r.ID, err)
	}
	features, err := decodeList(r.FeaturesJSON)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("listing %d: features: %w", r.ID, err)
	}
	return r.toDomain(images, features), nil
}

// postgresRow stores list columns as text[].
type postgresRow struct {
	sqlRow
	Images   pq.StringArray `db:"images"`
	Features pq.StringArray `db:"features"`
}

func (r postgresRow) listing() (domlisting.Listing, error) {
	return r.toDomain([]string(r.Images), []string(r.Features)), nil
}

func sqlRowFrom(l domlisting.Listing) sqlRow {
	return sqlRow{
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
		Type:        string(l.Category),
		Status:      l.Status,
		Lat:         l.Coordinates.Lat,
		Lng:         l.Coordinates.Lng,
	}
}

func sqliteRowFrom(l domlisting.Listing) (sqliteRow, error) {
	images, err := encodeList(l.Images)
	if err != nil {
		return sqliteRow{}, err
	}
	features, err := encodeList(l.Features)
	if err != nil {
		return sqliteRow{}, err
	}
	return sqliteRow{sqlRow: sqlRowFrom(l), ImagesJSON: images, FeaturesJSON: features}, nil
}

// postgresRowFrom never stores NULL arrays; the columns are NOT NULL.
func postgresRowFrom(l domlisting.Listing) (postgresRow, error) {
	images := pq.StringArray(l.Images)
	if images == nil {
		images = pq.StringArray{}
	}
	features := pq.StringArray(l.Features)
	if features == nil {
		features = pq.StringArray{}
	}
	return postgresRow{sqlRow: sqlRowFrom(l), Images: images, Features: features}, nil
}

func encodeList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
