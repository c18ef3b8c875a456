package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds account-level attributes for a user. The identity provider
// owns these rows; this service only reads them.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FullName  *string   `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
