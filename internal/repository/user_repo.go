package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"travro/internal/apperr"
	"travro/internal/models"
	"travro/internal/repository/db"
)

type UserRepository struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewUserRepository(conn *sql.DB, dialect db.Dialect) *UserRepository {
	return &UserRepository{db: conn, dialect: dialect, now: time.Now}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const userColumns = `id, username, password_hash, dob, destination, image_ref, created_at, updated_at`

const (
	insertUserSQL           = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUsersExceptSQL    = `SELECT ` + userColumns + ` FROM users WHERE id <> ? ORDER BY created_at`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                     models.User
		dob, created, updated string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &dob, &u.Destination, &u.ImageRef, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if u.DateOfBirth, err = time.Parse(models.DateLayout, dob); err != nil {
		return nil, fmt.Errorf("user %s: parse dob %q: %w", u.ID, dob, err)
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("user %s: parse created_at %q: %w", u.ID, created, err)
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("user %s: parse updated_at %q: %w", u.ID, updated, err)
	}
	return &u, nil
}

// Create inserts a new user. A taken username yields apperr.ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	now := r.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertUserSQL),
		u.ID,
		u.Username,
		u.PasswordHash,
		u.DateOfBirth.Format(models.DateLayout),
		u.Destination,
		u.ImageRef,
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, apperr.ErrUsernameTaken)
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByIDSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id %q: %w", id, err)
	}
	return u, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByUsernameSQL), username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// ListExcept returns every user whose id differs from id, oldest first.
func (r *UserRepository) ListExcept(ctx context.Context, id string) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(selectUsersExceptSQL), id)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 32)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// UpdateProfile changes the supplied columns of one user inside a transaction
// and returns the stored result. A missing user yields apperr.ErrNotFound.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Empty() {
		u, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("user id %q: %w", id, apperr.ErrNotFound)
		}
		return u, nil
	}

	var (
		sets []string
		args []any
	)
	if upd.Destination != nil {
		sets = append(sets, "destination = ?")
		args = append(args, *upd.Destination)
	}
	if upd.ImageRef != nil {
		sets = append(sets, "image_ref = ?")
		args = append(args, *upd.ImageRef)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(r.now()), id)
	q := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("update user id %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for user id %q: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("user id %q: %w", id, apperr.ErrNotFound)
	}

	u, err := scanUser(tx.QueryRowContext(ctx, r.dialect.Rebind(selectUserByIDSQL), id))
	if err != nil {
		return nil, fmt.Errorf("reload user id %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit profile update: %w", err)
	}
	return u, nil
}
