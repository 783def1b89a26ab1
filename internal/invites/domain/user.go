package domain

import "time"

// User is an account created by accepting an invitation. The wider product
// owns the full user model; this service persists the fields the grant
// carries plus what the acceptor supplies.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	Role        Role
	Department  string
	JobTitle    string
	HourlyRate  *float64
	Permissions []string

	Preferences  Preferences
	ContactPhone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
