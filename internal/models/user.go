package models

import "time"

// UserDB represents a user record in the database.
// PasswordHash must never be serialized into API responses.
type UserDB struct {
	Username     string    `db:"username"`      // Primary key, immutable
	PasswordHash string    `db:"password_hash"` // bcrypt hash, never plaintext
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Phone        string    `db:"phone"`
	JoinAt       time.Time `db:"join_at"`       // Set once at registration
	LastLoginAt  time.Time `db:"last_login_at"` // Refreshed on every login
}

// UserProfile is the public subset of a user exposed in listings
// and embedded in message payloads.
type UserProfile struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
}
