package models

import "time"

// Account event types.
const (
	EventRegister      = "REGISTER"
	EventLogin         = "LOGIN"
	EventLoginFailed   = "LOGIN_FAILED"
	EventProfileUpdate = "PROFILE_UPDATE"
)

// AccountEvent is a single entry of a user's activity log.
type AccountEvent struct {
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // REGISTER | LOGIN | LOGIN_FAILED | PROFILE_UPDATE
	Description string    `json:"description"` // human-readable
}
