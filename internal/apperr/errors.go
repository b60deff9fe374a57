// Package apperr holds the error taxonomy shared by every layer and its mapping to HTTP.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUsernameTaken           = errors.New("username already taken")
	ErrInvalidCredentials      = errors.New("invalid login credentials")
	ErrUnauthenticated         = errors.New("please authenticate")
	ErrUnresolvableDestination = errors.New("invalid destination in your profile")
	ErrNotFound                = errors.New("user not found")
	ErrUpstream                = errors.New("upstream service unavailable")
	ErrRateLimited             = errors.New("too many login attempts")
)

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnresolvableDestination):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a client for err.
// Taxonomy errors keep their wrapped detail only for InvalidInput; the
// credential and session errors always collapse to their fixed message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	case errors.Is(err, ErrUsernameTaken):
		return ErrUsernameTaken.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	case errors.Is(err, ErrUnresolvableDestination):
		return ErrUnresolvableDestination.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrRateLimited):
		return ErrRateLimited.Error()
	case errors.Is(err, ErrUpstream):
		return ErrUpstream.Error()
	default:
		return "something went wrong"
	}
}
