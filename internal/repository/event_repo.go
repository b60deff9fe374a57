package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travro/internal/models"
	"travro/internal/repository/db"
)

type EventRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewEventRepository(conn *sql.DB, dialect db.Dialect) *EventRepository {
	return &EventRepository{db: conn, dialect: dialect}
}

var _ Events = (*EventRepository)(nil)

const insertEventSQL = `INSERT INTO account_events (id, user_id, occurred_at, type, description) VALUES (?, ?, ?, ?, ?)`

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventRepository) Append(ctx context.Context, e models.AccountEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertEventSQL),
		e.EventID,
		e.UserID,
		formatTime(e.OccurredAt),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
	)
	if err != nil {
		return fmt.Errorf("insert %s event for user %q: %w", e.Type, e.UserID, err)
	}
	return nil
}

// List returns the user's events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *EventRepository) List(ctx context.Context, userID string, from, to time.Time, typ string) ([]models.AccountEvent, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(from))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTime(to))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, user_id, occurred_at, type, description FROM account_events WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY occurred_at ASC`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list events for user %q: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.AccountEvent, 0, 16)
	for rows.Next() {
		var (
			ev       models.AccountEvent
			occurred string
		)
		if err := rows.Scan(&ev.EventID, &ev.UserID, &occurred, &ev.Type, &ev.Description); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if ev.OccurredAt, err = parseTime(occurred); err != nil {
			return nil, fmt.Errorf("event %s: parse occurred_at %q: %w", ev.EventID, occurred, err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
