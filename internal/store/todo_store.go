package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// CreateTodo inserts a new todo. Generates a UUID if ID is empty and
// defaults sort_order to the end of the day column.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	todo.Text = strings.TrimSpace(todo.Text)
	if todo.Text == "" {
		return nil, fmt.Errorf("todo text must not be empty")
	}
	if !todo.Day.Valid() {
		return nil, fmt.Errorf("invalid day %q", todo.Day)
	}
	if todo.UserID == "" {
		return nil, fmt.Errorf("todo user id must not be empty")
	}

	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	if todo.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM todos WHERE user_id = ? AND day = ?",
			todo.UserID, todo.Day)
		if err != nil {
			return nil, fmt.Errorf("getting max sort_order: %w", err)
		}
		todo.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, user_id, text, completed, day, sort_order,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.UserID, todo.Text, boolToInt(todo.Completed),
		todo.Day, todo.SortOrder, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo updates text, completion, day, and sort order by ID.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	todo.Text = strings.TrimSpace(todo.Text)
	if todo.Text == "" {
		return nil, fmt.Errorf("todo text must not be empty")
	}
	if !todo.Day.Valid() {
		return nil, fmt.Errorf("invalid day %q", todo.Day)
	}

	todo.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			text = ?, completed = ?, day = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		todo.Text, boolToInt(todo.Completed), todo.Day, todo.SortOrder,
		todo.UpdatedAt, todo.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("todo %s: %w", todo.ID, ErrNotFound)
	}
	return s.GetTodoByID(ctx, todo.ID)
}

// DeleteTodo removes a todo by ID, scoped to its owner.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTodoByID retrieves a single todo by ID.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id string) (*model.Todo, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM todos WHERE id = ?", id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	return &todo, nil
}

// ListTodosByUser retrieves the user's todos ordered by day column and
// persisted rank.
func (s *SQLiteStore) ListTodosByUser(
	ctx context.Context,
	userID string,
	filter TodoFilter,
) ([]model.Todo, error) {
	builder := sq.Select(
		"id", "user_id", "text", "completed", "day", "sort_order",
		"created_at", "updated_at",
	).
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day", "sort_order", "created_at")

	if filter.Day != nil {
		builder = builder.Where(sq.Eq{"day": *filter.Day})
	}
	if filter.Completed != nil {
		builder = builder.Where(sq.Eq{"completed": boolToInt(*filter.Completed)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// ReorderTodos rewrites sort_order for a user's day column to match the
// given id order, renormalizing to 1..n.
func (s *SQLiteStore) ReorderTodos(
	ctx context.Context,
	userID string,
	day model.Day,
	orderedIDs []string,
) error {
	if !day.Valid() {
		return fmt.Errorf("invalid day %q", day)
	}
	if len(orderedIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		UPDATE todos SET sort_order = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND day = ?`)
	if err != nil {
		return fmt.Errorf("preparing reorder statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, id := range orderedIDs {
		if _, err := stmt.ExecContext(ctx, i+1, now, id, userID, day); err != nil {
			return fmt.Errorf("reordering todo %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// ReplaceTodosForUser swaps the user's whole collection in one transaction.
func (s *SQLiteStore) ReplaceTodosForUser(
	ctx context.Context,
	userID string,
	todos []model.Todo,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clearing todos for user %s: %w", userID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO todos (
			id, user_id, text, completed, day, sort_order,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range todos {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		_, err = stmt.ExecContext(ctx,
			t.ID, userID, t.Text, boolToInt(t.Completed),
			t.Day, t.SortOrder, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting todo %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// scanTodo scans a todo row.
func scanTodo(row interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo         model.Todo
		completedInt int
		day          string
	)

	err := row.Scan(
		&todo.ID, &todo.UserID, &todo.Text, &completedInt, &day,
		&todo.SortOrder, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, err
	}

	todo.Completed = completedInt != 0
	todo.Day = model.Day(day)
	return todo, nil
}
