package models

import "time"

// StoreStatus is the last observed state of the credential store connection.
type StoreStatus struct {
	Connected bool      `json:"connected"`
	Message   string    `json:"message"`
	CheckedAt time.Time `json:"checked_at"`
}
