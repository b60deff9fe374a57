package service

import (
	"context"
	"time"

	"travro/internal/blob"
	"travro/internal/geo"
	"travro/internal/logger"
	"travro/internal/models"
	"travro/internal/repository"
)

// Authorization covers account creation, login and bearer-token checks.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Authorize(ctx context.Context, header string) (*models.User, error)
}

// Profile reads and edits the caller's own record.
type Profile interface {
	Get(u *models.User) models.Profile
	Update(ctx context.Context, u *models.User, in ProfileInput) (*models.User, error)
}

// Explorer lists travelers headed near the caller's destination.
type Explorer interface {
	Explore(ctx context.Context, u *models.User) ([]models.NearbyUser, error)
}

// Cities serves destination autocomplete.
type Cities interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

// ActivityLog exposes the caller's account events with filtering.
type ActivityLog interface {
	List(ctx context.Context, userID string, f LogFilter) ([]models.AccountEvent, error)
}

// Health tracks store reachability in the background.
// Stop via context cancellation in main() for graceful shutdown.
type Health interface {
	Run(ctx context.Context, tick time.Duration)
	Status(ctx context.Context) models.StoreStatus
}

type Service struct {
	Authorization
	Profile
	Explorer
	Cities
	ActivityLog
	Health
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Repos        *repository.Repository
	Geo          geo.Lookup
	Blobs        blob.Store
	Tokens       *TokenService
	Hasher       Hasher
	RadiusMeters float64
	Log          *logger.Logger
}

func NewService(d Deps) *Service {
	rec := newRecorder(d.Repos.Events, d.Log)
	return &Service{
		Authorization: NewAuthService(d.Repos.Users, d.Hasher, d.Tokens, d.Blobs, rec),
		Profile:       NewProfileService(d.Repos.Users, d.Blobs, rec),
		Explorer:      NewExploreService(d.Repos.Users, d.Geo, d.RadiusMeters),
		Cities:        NewCityService(d.Geo, DefaultSuggestLimit),
		ActivityLog:   NewActivityService(d.Repos.Events),
		Health:        NewHealthService(d.Repos.Store, d.Log),
	}
}
