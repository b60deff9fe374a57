package service

import (
	"context"
	"strings"

	"travro/internal/geo"
)

// DefaultSuggestLimit caps autocomplete results.
const DefaultSuggestLimit = 5

type CityService struct {
	lookup geo.Lookup
	limit  int
}

func NewCityService(lookup geo.Lookup, limit int) *CityService {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	return &CityService{lookup: lookup, limit: limit}
}

// Suggest returns up to limit city names containing query. A blank query
// yields an empty list.
func (s *CityService) Suggest(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	names, err := s.lookup.Suggest(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
