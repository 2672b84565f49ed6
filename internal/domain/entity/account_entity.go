package entity

import "time"

// Account is an identity allowed to use the API.
// PasswordHash stores a bcrypt hash and is never serialized.
// CreatedBy is the account that provisioned it; empty for the seeded account.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
