package entities

import (
	"time"
)

// User represents a registered account. The hashed password never leaves
// the persistence layer in API responses.
type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
