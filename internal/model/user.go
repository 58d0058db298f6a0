package model

import "time"

// User represents an identity record.
// Nothing authenticates the userId carried on fortunes yet; it is a
// caller-supplied opaque tag, not a trust boundary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	ZodiacSign   string    `json:"zodiacSign,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
