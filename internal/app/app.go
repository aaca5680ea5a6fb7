// Package app is the handle a view receives: the current list and filter
// to render, and the intents it may forward.
package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/filter"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/storage"
	"github.com/Makepad-fr/todos/internal/todo"
)

// App pairs the todo store with the view's filter selection.
type App struct {
	store  *todo.Store
	sel    filter.Selector
	kv     storage.KV // set by Open; closed by Close
	key    string
	logger *log.Logger
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFilter sets the initial filter.
func WithFilter(f filter.Filter) Option {
	return func(a *App) { a.sel.Set(f) }
}

// New wraps an existing store.
func New(store *todo.Store, opts ...Option) *App {
	a := &App{store: store, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases the storage backend opened by Open.
func (a *App) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

// Todos is a snapshot of the full list.
func (a *App) Todos() []model.Todo { return a.store.Todos() }

// Filter is the current view filter.
func (a *App) Filter() filter.Filter { return a.sel.Current() }

// Visible is the current list narrowed by the current filter.
func (a *App) Visible() []model.Todo {
	return filter.Visible(a.store.Todos(), a.sel.Current())
}

// Entries is Visible with each record's index in the full list.
func (a *App) Entries() []filter.Entry {
	return filter.Entries(a.store.Todos(), a.sel.Current())
}

// ItemsLeft counts the todos not yet completed.
func (a *App) ItemsLeft() int { return a.store.ActiveCount() }

// CompletedCount counts the completed todos.
func (a *App) CompletedCount() int { return a.store.CompletedCount() }

// Len is the size of the full list.
func (a *App) Len() int { return a.store.Len() }

// AllCompleted reports whether the list is non-empty and fully completed.
func (a *App) AllCompleted() bool {
	return a.store.Len() > 0 && a.store.ActiveCount() == 0
}

// AddTodo appends an open todo labelled label.
func (a *App) AddTodo(label string) error {
	return a.store.Add(model.New(label))
}

// UpdateTodo replaces the todo at index.
func (a *App) UpdateTodo(t model.Todo, index int) error {
	return a.store.Update(t, index)
}

// RemoveTodo deletes the todo at index.
func (a *App) RemoveTodo(index int) error {
	return a.store.Remove(index)
}

// CheckAllTodo marks every todo completed (or open).
func (a *App) CheckAllTodo(done bool) error {
	return a.store.SetAllCompleted(done)
}

// ClearCompleted removes completed todos.
func (a *App) ClearCompleted() error {
	return a.store.ClearCompleted()
}

// SetFilter changes the view filter. It is not persisted.
func (a *App) SetFilter(f filter.Filter) {
	a.sel.Set(f)
	a.logger.Debug("filter changed", "filter", f)
}

// ToggleTodo flips the completion flag of the todo at index.
func (a *App) ToggleTodo(index int) error {
	t, err := a.store.At(index)
	if err != nil {
		return err
	}
	return a.store.Update(t.Toggled(), index)
}

// EditTodo relabels the todo at index, keeping its flag.
func (a *App) EditTodo(index int, label string) error {
	t, err := a.store.At(index)
	if err != nil {
		return err
	}
	return a.store.Update(t.Relabeled(label), index)
}

// IDAt returns a handle for the todo at index that stays valid while other
// todos are removed or the list is reloaded.
func (a *App) IDAt(index int) (string, error) {
	return a.store.IDAt(index)
}

// EditTodoByID relabels the todo with id, keeping its flag. It returns
// todo.ErrUnknownID if that todo is gone.
func (a *App) EditTodoByID(id, label string) error {
	i, ok := a.store.IndexOf(id)
	if !ok {
		return todo.ErrUnknownID
	}
	return a.EditTodo(i, label)
}

// Reload re-reads the list from storage.
func (a *App) Reload() error {
	if err := a.store.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}
