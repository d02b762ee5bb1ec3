package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

func TestLoadMissingFileIsEmptyBoard(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "todos.json"))

	todos, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "nested", "todos.json"))

	created := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	in := []model.Todo{
		{ID: "1", Text: "buy milk", Day: model.Monday, SortOrder: 1, CreatedAt: created, UpdatedAt: created},
		{ID: "2", Text: "call mum", Completed: true, Day: model.Weekend, SortOrder: 1, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}
	require.NoError(t, f.Save(in))

	out, err := f.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.True(t, out[1].Completed)

	// Timestamps come back as real times, not strings.
	assert.True(t, out[0].CreatedAt.Equal(created))
	assert.True(t, out[1].UpdatedAt.Equal(created.Add(time.Hour)))
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "todos.json"))

	require.NoError(t, f.Save([]model.Todo{{ID: "1", Text: "a", Day: model.Monday}}))
	require.NoError(t, f.Save([]model.Todo{{ID: "2", Text: "b", Day: model.Friday}}))

	out, err := f.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path).Load()
	assert.Error(t, err)
}

func TestSaveNilCollectionWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	f := New(path)

	require.NoError(t, f.Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
