package store

import (
	"context"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// UserPersister adapts a Store to the board's whole-collection Load/Save
// contract for one signed-in user.
type UserPersister struct {
	store  Store
	userID string
}

// NewUserPersister creates a persister scoped to the given user.
func NewUserPersister(s Store, userID string) *UserPersister {
	return &UserPersister{store: s, userID: userID}
}

// Load returns the user's todos ordered by day column and persisted rank.
func (p *UserPersister) Load() ([]model.Todo, error) {
	return p.store.ListTodosByUser(context.Background(), p.userID, TodoFilter{})
}

// Save replaces the user's whole collection.
func (p *UserPersister) Save(todos []model.Todo) error {
	return p.store.ReplaceTodosForUser(context.Background(), p.userID, todos)
}
