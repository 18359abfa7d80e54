// Package city provides the in-memory city reference list.
package city

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	domcity "github.com/lotego/lotego/internal/domain/city"
	"github.com/lotego/lotego/internal/repository/seed"
)

type yamlRow struct {
	Name   string `yaml:"name"`
	State  string `yaml:"state"`
	Region string `yaml:"region"`
}

// Snapshot is an immutable city list. Duplicates are kept as given.
type Snapshot struct {
	cities []domcity.City
}

// NewSnapshot freezes a copy of cities.
func NewSnapshot(cities []domcity.City) *Snapshot {
	return &Snapshot{cities: slices.Clone(cities)}
}

// Embedded returns the built-in city list.
func Embedded() (*Snapshot, error) {
	cities, err := ParseYAML(seed.Cities)
	if err != nil {
		return nil, fmt.Errorf("embedded cities: %w", err)
	}
	return NewSnapshot(cities), nil
}

// LoadFile reads a YAML city file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}
	cities, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("cities file %s: %w", path, err)
	}
	return NewSnapshot(cities), nil
}

// ParseYAML decodes a YAML sequence of cities.
func ParseYAML(data []byte) ([]domcity.City, error) {
	var rows []yamlRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse cities: %w", err)
	}
	out := make([]domcity.City, len(rows))
	for i, r := range rows {
		out[i] = domcity.City{Name: r.Name, State: r.State, Region: r.Region}
	}
	return out, nil
}

// List returns the cities in collection order.
func (s *Snapshot) List(_ context.Context) ([]domcity.City, error) {
	return slices.Clone(s.cities), nil
}
