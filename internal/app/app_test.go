package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todos/internal/config"
	"github.com/Makepad-fr/todos/internal/filter"
	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/todo"
)

func openMemory(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = config.BackendMemory
	a, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestCallbacks(t *testing.T) {
	a := openMemory(t)

	require.NoError(t, a.AddTodo("buy milk"))
	require.NoError(t, a.AddTodo("walk dog"))
	require.NoError(t, a.AddTodo(""))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, a.ItemsLeft())

	require.NoError(t, a.ToggleTodo(0))
	require.NoError(t, a.EditTodo(1, "walk the dog"))
	assert.Equal(t, []model.Todo{
		{Label: "buy milk", IsCompleted: true},
		{Label: "walk the dog"},
		{Label: ""},
	}, a.Todos())

	require.NoError(t, a.UpdateTodo(model.Todo{Label: "x", IsCompleted: true}, 2))
	assert.Equal(t, 2, a.CompletedCount())

	require.NoError(t, a.ClearCompleted())
	assert.Equal(t, []model.Todo{{Label: "walk the dog"}}, a.Todos())

	require.NoError(t, a.CheckAllTodo(true))
	assert.True(t, a.AllCompleted())
	require.NoError(t, a.CheckAllTodo(false))
	assert.False(t, a.AllCompleted())

	require.NoError(t, a.RemoveTodo(0))
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.AllCompleted(), "empty list is never all-completed")
}

func TestIndexErrorsSurface(t *testing.T) {
	a := openMemory(t)
	require.NoError(t, a.AddTodo("a"))

	var ie *todo.IndexError
	assert.ErrorAs(t, a.ToggleTodo(3), &ie)
	assert.ErrorAs(t, a.EditTodo(-1, "x"), &ie)
	assert.ErrorAs(t, a.RemoveTodo(1), &ie)
	assert.Equal(t, []model.Todo{{Label: "a"}}, a.Todos())
}

func TestEditTodoByID(t *testing.T) {
	a := openMemory(t)
	require.NoError(t, a.AddTodo("a"))
	require.NoError(t, a.AddTodo("b"))
	require.NoError(t, a.ToggleTodo(1))

	id, err := a.IDAt(1)
	require.NoError(t, err)
	require.NoError(t, a.RemoveTodo(0))

	require.NoError(t, a.EditTodoByID(id, "b!"))
	assert.Equal(t, []model.Todo{{Label: "b!", IsCompleted: true}}, a.Todos())

	require.NoError(t, a.RemoveTodo(0))
	assert.ErrorIs(t, a.EditTodoByID(id, "x"), todo.ErrUnknownID)
}

func TestFilterView(t *testing.T) {
	a := openMemory(t)
	for _, l := range []string{"a", "b", "c"} {
		require.NoError(t, a.AddTodo(l))
	}
	require.NoError(t, a.ToggleTodo(1))

	assert.Equal(t, filter.All, a.Filter())
	assert.Len(t, a.Visible(), 3)

	a.SetFilter(filter.Completed)
	assert.Equal(t, []model.Todo{{Label: "b", IsCompleted: true}}, a.Visible())
	entries := a.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Index)

	a.SetFilter(filter.Active)
	assert.Len(t, a.Visible(), 2)
}

func TestWithFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory
	a, err := Open(cfg, logging.Discard(), WithFilter(filter.Active))
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, filter.Active, a.Filter())
}

func TestOpenFileBackendPersists(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir

	a, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, a.AddTodo("buy milk"))
	require.NoError(t, a.Close())

	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"label":"buy milk","isCompleted":false}]`, string(b))

	a, err = Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, []model.Todo{{Label: "buy milk"}}, a.Todos())
}

func TestOpenSQLiteBackendPersists(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendSQLite
	cfg.DataDir = filepath.Join(t.TempDir(), "nested")

	a, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, a.AddTodo("walk dog"))
	require.NoError(t, a.Close())

	a, err = Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, []model.Todo{{Label: "walk dog"}}, a.Todos())
}

func TestOpenDiscardsCorruptList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"), []byte(`{"not":"a list"}`), 0o644))

	var logs bytes.Buffer
	cfg := config.Default()
	cfg.DataDir = dir
	a, err := Open(cfg, logging.New(&logs, "warn"))
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Todos())
	assert.Contains(t, logs.String(), "discarding stored todos")
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "redis"
	_, err := Open(cfg, nil)
	assert.Error(t, err)
}

func TestWatchUnsupported(t *testing.T) {
	a := openMemory(t)
	assert.ErrorIs(t, a.Watch(context.Background(), func() {}), ErrWatchUnsupported)
}

func TestWatchAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir
	a, err := Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 16)
	require.NoError(t, a.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"),
		[]byte(`[{"label":"from elsewhere","isCompleted":true}]`), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	require.NoError(t, a.Reload())
	assert.Equal(t, []model.Todo{{Label: "from elsewhere", IsCompleted: true}}, a.Todos())
}
