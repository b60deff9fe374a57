package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travro/internal/apperr"
	"travro/internal/geo"
	"travro/internal/models"
	"travro/internal/repository"
)

// DefaultRadiusMeters is the explore radius when none is configured.
const DefaultRadiusMeters = 400_000.0

// ageYear is the mean calendar year used for age arithmetic.
const ageYear = 8766 * time.Hour // 365.25 days

type ExploreService struct {
	users  repository.Users
	geo    geo.Lookup
	radius float64
	now    func() time.Time
}

func NewExploreService(users repository.Users, lookup geo.Lookup, radiusMeters float64) *ExploreService {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &ExploreService{users: users, geo: lookup, radius: radiusMeters, now: time.Now}
}

// Explore returns every other traveler whose destination lies within the
// radius of the caller's, in store order. Candidates whose destination
// cannot be resolved are skipped.
func (s *ExploreService) Explore(ctx context.Context, u *models.User) ([]models.NearbyUser, error) {
	origin, err := s.geo.Resolve(ctx, u.Destination)
	if err != nil {
		if errors.Is(err, geo.ErrCityNotFound) {
			return nil, fmt.Errorf("resolve %q: %w", u.Destination, apperr.ErrUnresolvableDestination)
		}
		return nil, fmt.Errorf("resolve %q: %w", u.Destination, err)
	}

	candidates, err := s.users.ListExcept(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	nearby := make([]models.NearbyUser, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == u.ID {
			continue
		}
		at, err := s.geo.Resolve(ctx, c.Destination)
		if err != nil {
			continue
		}
		if geo.Distance(origin, at) > s.radius {
			continue
		}
		nearby = append(nearby, models.NearbyUser{
			Username:    c.Username,
			Age:         Age(c.DateOfBirth, now),
			ImageRef:    c.ImageRef,
			Destination: c.Destination,
		})
	}
	return nearby, nil
}

// Age is whole 365.25-day years elapsed between dob and now. It works in
// Unix seconds so spans beyond time.Duration's ~292 years stay exact.
func Age(dob, now time.Time) int {
	secs := now.Unix() - dob.Unix()
	year := int64(ageYear / time.Second)
	years := secs / year
	if secs%year != 0 && secs < 0 {
		years--
	}
	return int(years)
}
