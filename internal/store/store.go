package store

import (
	"context"
	"errors"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// Sentinel errors returned by Store implementations. Call sites branch with
// errors.Is instead of inspecting an untyped result envelope.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint would be violated,
	// e.g. creating a second user for the same external identity.
	ErrDuplicate = errors.New("record already exists")

	// ErrUnavailable is returned when remote storage is not configured.
	ErrUnavailable = errors.New("storage unavailable")
)

// TodoFilter narrows ListTodos queries. Nil fields mean "any".
type TodoFilter struct {
	Day       *model.Day
	Completed *bool
}

// Store is the persistence interface for users and their weekly todos.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	UpdateUser(ctx context.Context, user model.User) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	FindUserByExternalID(ctx context.Context, externalID string) (*model.User, error)
	UserStats(ctx context.Context, userID string) (*model.UserStats, error)

	// === Todos ===

	CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, userID string) error
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	ListTodosByUser(ctx context.Context, userID string, filter TodoFilter) ([]model.Todo, error)

	// ReorderTodos rewrites sort_order for a user's day column to match the
	// given id order, renormalizing to 1..n.
	ReorderTodos(ctx context.Context, userID string, day model.Day, orderedIDs []string) error

	// ReplaceTodosForUser swaps the user's whole collection in one
	// transaction. Backs the board's whole-list persistence contract.
	ReplaceTodosForUser(ctx context.Context, userID string, todos []model.Todo) error
}
