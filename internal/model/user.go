package model

import "time"

// User is the internal directory record a signed-in identity resolves to.
// ExternalID is the identity provider's stable subject id.
type User struct {
	ID         string    `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Email      string    `json:"email" db:"email"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UserStats summarizes a user's board.
type UserStats struct {
	TotalTodos     int `json:"total_todos"`
	CompletedTodos int `json:"completed_todos"`
	PendingTodos   int `json:"pending_todos"`
}
