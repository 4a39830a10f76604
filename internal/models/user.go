package models

import "time"

// User is an identity record. Usernames are unique when compared
// case-insensitively; the stored casing is canonical.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
