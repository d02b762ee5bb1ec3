package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
// Returns ErrDuplicate when the external identity is already registered.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if strings.TrimSpace(user.ExternalID) == "" || strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("user external id and email must not be empty")
	}

	existing, err := s.FindUserByExternalID(ctx, user.ExternalID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user for identity %s: %w", user.ExternalID, ErrDuplicate)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, external_id, email, first_name, last_name, image_url,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.ExternalID, user.Email, user.FirstName, user.LastName,
		user.ImageURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// UpdateUser updates an existing user's profile fields by ID.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	user.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?, first_name = ?, last_name = ?, image_url = ?, updated_at = ?
		WHERE id = ?`,
		user.Email, user.FirstName, user.LastName, user.ImageURL,
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", user.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	return s.FindUserByID(ctx, user.ID)
}

// DeleteUser removes a user by ID. The user's todos cascade.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindUserByID retrieves a single user by internal ID.
func (s *SQLiteStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, "SELECT * FROM users WHERE id = ?", id)
}

// FindUserByExternalID retrieves the user owning the given provider identity.
func (s *SQLiteStore) FindUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return s.findUser(ctx, "SELECT * FROM users WHERE external_id = ?", externalID)
}

func (s *SQLiteStore) findUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowxContext(ctx, query, arg).Scan(
		&user.ID, &user.ExternalID, &user.Email, &user.FirstName,
		&user.LastName, &user.ImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", arg, err)
	}
	return &user, nil
}

// UserStats summarizes the user's board: totals split by completion.
func (s *SQLiteStore) UserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	var stats model.UserStats
	err := s.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(completed), 0)
		FROM todos WHERE user_id = ?`, userID,
	).Scan(&stats.TotalTodos, &stats.CompletedTodos)
	if err != nil {
		return nil, fmt.Errorf("getting stats for user %s: %w", userID, err)
	}
	stats.PendingTodos = stats.TotalTodos - stats.CompletedTodos
	return &stats, nil
}
