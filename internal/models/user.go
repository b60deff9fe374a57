package models

import "time"

// DateLayout is the wire and storage format of a date of birth.
const DateLayout = "2006-01-02"

// User is a registered traveller.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	DateOfBirth  time.Time `json:"-"`
	Destination  string    `json:"destination"`
	ImageRef     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DOB returns the date of birth formatted as YYYY-MM-DD.
func (u User) DOB() string {
	if u.DateOfBirth.IsZero() {
		return ""
	}
	return u.DateOfBirth.Format(DateLayout)
}

// Profile is what a user sees about themselves.
type Profile struct {
	Username    string `json:"username"`
	DOB         string `json:"dob"`
	ImageRef    string `json:"imageUrl"`
	Destination string `json:"destination"`
}

// NearbyUser is the projection returned by explore.
type NearbyUser struct {
	Username    string `json:"username"`
	Age         int    `json:"age"`
	ImageRef    string `json:"imageUrl"`
	Destination string `json:"destination"`
}

// ProfileUpdate carries the columns to change; nil means "leave as is".
type ProfileUpdate struct {
	Destination *string
	ImageRef    *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Destination == nil && p.ImageRef == nil
}
