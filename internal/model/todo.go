package model

import "time"

// Todo is a single task pinned to a day column of the weekly board.
type Todo struct {
	ID        string `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	Completed bool   `json:"completed" db:"completed"`
	Day       Day    `json:"day" db:"day"`

	// SortOrder is the persisted rank within the todo's day column.
	// Renormalized to 1..n on writes so display order survives reloads.
	SortOrder int `json:"sort_order" db:"sort_order"`

	// UserID is empty in local (file-backed) mode.
	UserID string `json:"user_id,omitempty" db:"user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
