package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travro/internal/apperr"
	"travro/internal/logger"
	"travro/internal/models"
	"travro/internal/repository"
)

type ActivityService struct {
	events repository.Events
}

func NewActivityService(events repository.Events) *ActivityService {
	return &ActivityService{events: events}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *ActivityService) List(ctx context.Context, userID string, f LogFilter) ([]models.AccountEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}
	events, err := s.events.List(ctx, userID, from, to, typ)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.AccountEvent{}
	}
	return events, nil
}

// recorder appends account events without failing the calling flow.
type recorder struct {
	events repository.Events
	log    *logger.Logger
}

func newRecorder(events repository.Events, log *logger.Logger) *recorder {
	return &recorder{events: events, log: log}
}

func (r *recorder) record(ctx context.Context, userID, typ, description string) {
	if r == nil || r.events == nil {
		return
	}
	err := r.events.Append(ctx, models.AccountEvent{
		UserID:      userID,
		Type:        typ,
		Description: description,
	})
	if err != nil && r.log != nil {
		r.log.Warnw("account_event_append_failed", "user_id", userID, "type", typ, "error", err)
	}
}
