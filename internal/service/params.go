package service

import (
	"time"

	"travro/internal/blob"
)

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Username    string
	Password    string
	DOB         string // YYYY-MM-DD
	Destination string
	Image       *blob.Upload
}

// ProfileInput is a partial profile edit; nil fields are left unchanged.
type ProfileInput struct {
	Destination *string
	Image       *blob.Upload
}

// LogFilter supports activity filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "REGISTER", "LOGIN", "LOGIN_FAILED", "PROFILE_UPDATE"
}
