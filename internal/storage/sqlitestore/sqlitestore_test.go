package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todos/internal/storage"
)

func TestRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("todos", "[]"))
	require.NoError(t, s.Set("todos", `[{"label":"a","isCompleted":true}]`))

	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"label":"a","isCompleted":true}]`, v)

	require.NoError(t, s.Delete("todos"))
	_, ok, err = s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyValueIsPresent(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("todos", ""))
	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("todos", `[{"label":"walk dog","isCompleted":false}]`))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"label":"walk dog","isCompleted":false}]`, v)
}

func TestClosed(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.Get("todos")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, s.Set("todos", "[]"), storage.ErrClosed)
	assert.ErrorIs(t, s.Delete("todos"), storage.ErrClosed)
}
