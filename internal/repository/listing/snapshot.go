// Package listing provides read-only listing sources: an in-memory snapshot
// loaded from YAML, and SQL tables read through sqlx.
package listing

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	domlisting "github.com/lotego/lotego/internal/domain/listing"
	"github.com/lotego/lotego/internal/repository/seed"
)

// Snapshot is an immutable in-memory listing collection.
type Snapshot struct {
	listings []domlisting.Listing
}

// NewSnapshot validates listings and freezes a copy of them.
func NewSnapshot(listings []domlisting.Listing) (*Snapshot, error) {
	if err := domlisting.ValidateCollection(listings); err != nil {
		return nil, err
	}
	return &Snapshot{listings: slices.Clone(listings)}, nil
}

// Embedded returns a snapshot of the built-in seed listings.
func Embedded() (*Snapshot, error) {
	listings, err := ParseYAML(seed.Listings)
	if err != nil {
		return nil, fmt.Errorf("embedded listings: %w", err)
	}
	return NewSnapshot(listings)
}

// LoadFile reads a YAML listing file into a snapshot.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	listings, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("listings file %s: %w", path, err)
	}
	return NewSnapshot(listings)
}

// ParseYAML decodes a YAML sequence of listings. It does not validate them.
func ParseYAML(data []byte) ([]domlisting.Listing, error) {
	var rows []yamlRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse listings: %w", err)
	}
	out := make([]domlisting.Listing, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

// List returns the listings in collection order. The slice is a fresh copy.
func (s *Snapshot) List(_ context.Context) ([]domlisting.Listing, error) {
	return slices.Clone(s.listings), nil
}

// Ping always succeeds.
func (s *Snapshot) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Snapshot) Close() error { return nil }
