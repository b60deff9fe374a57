// Package geo resolves destination names to coordinates and measures
// great-circle distances between them.
package geo

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed cities.json
var defaultCities []byte

// ErrCityNotFound is returned when a name has no entry in the table.
var ErrCityNotFound = errors.New("city not found")

// Coordinates is a point on the globe in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// City is a single row of the reference table.
type City struct {
	Name    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Lookup is the read-only geocoding collaborator.
type Lookup interface {
	Resolve(ctx context.Context, name string) (Coordinates, error)
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}

// Table is an in-memory Lookup over a static list of cities.
type Table struct {
	cities []City
	byName map[string]Coordinates
}

var _ Lookup = (*Table)(nil)

// NewTable indexes cities by lower-cased name. The first row wins on duplicates.
func NewTable(cities []City) *Table {
	t := &Table{
		cities: cities,
		byName: make(map[string]Coordinates, len(cities)),
	}
	for _, c := range cities {
		key := normalize(c.Name)
		if key == "" {
			continue
		}
		if _, dup := t.byName[key]; dup {
			continue
		}
		t.byName[key] = Coordinates{Lat: c.Lat, Lng: c.Lng}
	}
	return t
}

// LoadTable reads a JSON city table from path, or the embedded table when path is empty.
func LoadTable(path string) (*Table, error) {
	raw := defaultCities
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read city table %q: %w", path, err)
		}
		raw = b
	}
	var cities []City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("decode city table: %w", err)
	}
	return NewTable(cities), nil
}

// Len reports the number of rows in the table.
func (t *Table) Len() int { return len(t.cities) }

// Resolve finds name by case-insensitive exact match.
func (t *Table) Resolve(_ context.Context, name string) (Coordinates, error) {
	c, ok := t.byName[normalize(name)]
	if !ok {
		return Coordinates{}, fmt.Errorf("%q: %w", name, ErrCityNotFound)
	}
	return c, nil
}

// Suggest returns up to limit city names containing query, in table order.
func (t *Table) Suggest(_ context.Context, query string, limit int) ([]string, error) {
	q := normalize(query)
	out := make([]string, 0, limit)
	if q == "" || limit <= 0 {
		return out, nil
	}
	for _, c := range t.cities {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c.Name)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
