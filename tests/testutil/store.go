package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrmenezes/basic-todo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err, "creating test store")

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
