package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"travro/internal/apperr"
	"travro/internal/blob"
	"travro/internal/models"
	"travro/internal/repository"
)

// dummyPassword feeds the compare performed for unknown usernames.
const dummyPassword = "travro-unknown-user"

// AuthService handles user auth logic
type AuthService struct {
	users  repository.Users
	hasher Hasher
	tokens *TokenService
	blobs  blob.Store
	events *recorder
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.Users, hasher Hasher, tokens *TokenService, blobs blob.Store, events *recorder) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		blobs:  blobs,
		events: events,
		now:    time.Now,
	}
}

// Register validates the form, stores the photo, hashes the password and
// creates the account. The returned token is already valid.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(in.Username)
	destination := strings.TrimSpace(in.Destination)
	switch {
	case username == "":
		return nil, "", fmt.Errorf("username is required: %w", apperr.ErrInvalidInput)
	case strings.TrimSpace(in.Password) == "":
		return nil, "", fmt.Errorf("password is required: %w", apperr.ErrInvalidInput)
	case destination == "":
		return nil, "", fmt.Errorf("destination is required: %w", apperr.ErrInvalidInput)
	case in.Image == nil:
		return nil, "", fmt.Errorf("image is required: %w", apperr.ErrInvalidInput)
	case !in.Image.IsImage():
		return nil, "", fmt.Errorf("image must be an image file: %w", apperr.ErrInvalidInput)
	}
	dob, err := parseDOB(in.DOB, s.now())
	if err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	imageRef, err := s.blobs.Upload(ctx, username, *in.Image)
	if err != nil {
		return nil, "", fmt.Errorf("upload image: %w: %w", apperr.ErrUpstream, err)
	}

	now := s.now().UTC()
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		DateOfBirth:  dob,
		Destination:  destination,
		ImageRef:     imageRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// the photo is orphaned either way; removal is best effort
		_ = s.blobs.Delete(ctx, imageRef)
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.events.record(ctx, u.ID, models.EventRegister, "account created")
	return &u, token, nil
}

// Login checks credentials and returns a fresh token. Unknown usernames and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		s.hasher.Verify(s.dummy(), password)
		return nil, "", apperr.ErrInvalidCredentials
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		s.events.record(ctx, u.ID, models.EventLoginFailed, "wrong password")
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.events.record(ctx, u.ID, models.EventLogin, "logged in")
	return u, token, nil
}

// Authorize resolves an Authorization header to a stored user. Every failure
// is apperr.ErrUnauthenticated.
func (s *AuthService) Authorize(ctx context.Context, header string) (*models.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, fmt.Errorf("missing bearer token: %w", apperr.ErrUnauthenticated)
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load user: %w", apperr.ErrUnauthenticated, err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %q no longer exists: %w", id, apperr.ErrUnauthenticated)
	}
	return u, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyHash
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// parseDOB accepts YYYY-MM-DD or a full RFC 3339 timestamp truncated to its
// date. Dates after today are rejected.
func parseDOB(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("dob is required: %w", apperr.ErrInvalidInput)
	}
	dob, err := time.Parse(models.DateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return time.Time{}, fmt.Errorf("dob %q is not a YYYY-MM-DD date: %w", s, apperr.ErrInvalidInput)
		}
		ts = ts.UTC()
		dob = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	if dob.After(now.UTC()) {
		return time.Time{}, fmt.Errorf("dob %q is in the future: %w", s, apperr.ErrInvalidInput)
	}
	return dob, nil
}

