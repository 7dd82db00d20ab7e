package models

import "time"

// User represents an account of the remote store.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the stable identifier (UUID) of the user. It is the JWT
	// subject, scopes the remote collection and salts the key derivation.
	UserID string `json:"user_id,omitempty"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Password carries the plaintext password on the wire and its HMAC hash
	// once it reached the service layer.
	Password string `json:"password,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}
