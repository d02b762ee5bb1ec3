package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SQLiteStore{db: sqlx.NewDb(db, "sqlmock")}, mock
}

// A failed whole-collection write must roll the transaction back and
// surface the driver error to the caller.
func TestReplaceTodosForUserWriteFailure(t *testing.T) {
	s, mock := newMockStore(t)
	driverErr := errors.New("database is locked")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM todos").
		WithArgs("user-1").
		WillReturnError(driverErr)
	mock.ExpectRollback()

	err := s.ReplaceTodosForUser(context.Background(), "user-1", []model.Todo{
		{ID: "t1", Text: "x", Day: model.Monday, SortOrder: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderTodosTransactionFailure(t *testing.T) {
	s, mock := newMockStore(t)
	driverErr := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectPrepare("UPDATE todos SET sort_order").
		ExpectExec().
		WillReturnError(driverErr)
	mock.ExpectRollback()

	err := s.ReorderTodos(context.Background(), "user-1", model.Friday, []string{"t1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
