package models

import (
	"time"

	"backend/internal/domain"
)

// User is an account with a role. IsFraud only applies to vendors; a fraud
// vendor keeps their data but disappears from public inventory.
type User struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	PhotoURL  string      `json:"photoURL,omitempty"`
	Role      domain.Role `json:"role"`
	IsFraud   bool        `json:"isFraud"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ProfileUpdate supports PATCH-style updates via key presence.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
}
