package repository

import (
	"context"
	"database/sql"
	"time"

	"travro/internal/models"
	"travro/internal/repository/db"
)

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListExcept(ctx context.Context, id string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
}

// Events is the append-only account activity log.
type Events interface {
	Append(ctx context.Context, e models.AccountEvent) error
	List(ctx context.Context, userID string, from, to time.Time, typ string) ([]models.AccountEvent, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Repository struct {
	Users  Users
	Events Events
	Store  Pinger
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		Users:  NewUserRepository(conn, dialect),
		Events: NewEventRepository(conn, dialect),
		Store:  conn,
	}
}

// timeLayout is fixed-width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
