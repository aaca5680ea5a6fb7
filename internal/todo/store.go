// Package todo owns the in-memory todo list and keeps its persisted copy in
// step with it.
package todo

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/todos/internal/model"
)

// Persister is where the Store reads its initial list from and writes every
// change to.
type Persister interface {
	Load() ([]model.Todo, error)
	Save(list []model.Todo) error
}

// Store holds the ordered todo list. Every mutating method saves the full
// list before it returns; if the save fails, or the index is bad, the list
// is left as it was.
//
// A Store is not safe for concurrent use.
type Store struct {
	p      Persister
	list   []model.Todo
	ids    []string // ids[i] identifies list[i]; never persisted
	newID  func() string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the record id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New loads the list from p and returns a Store owning it.
func New(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:      p,
		newID:  uuid.NewString,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	list, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	s.list = model.Clone(list)
	s.ids = s.freshIDs(len(list))
	s.logger.Debug("loaded todos", "count", len(list))
	return s, nil
}

// Todos returns a copy of the current list.
func (s *Store) Todos() []model.Todo { return model.Clone(s.list) }

// Len is the number of records.
func (s *Store) Len() int { return len(s.list) }

// At returns the record at index.
func (s *Store) At(index int) (model.Todo, error) {
	if err := s.check("at", index); err != nil {
		return model.Todo{}, err
	}
	return s.list[index], nil
}

// ActiveCount is the number of records not yet completed.
func (s *Store) ActiveCount() int {
	_, active := model.Counts(s.list)
	return active
}

// CompletedCount is the number of completed records.
func (s *Store) CompletedCount() int {
	done, _ := model.Counts(s.list)
	return done
}

// Add appends t.
func (s *Store) Add(t model.Todo) error {
	next := append(model.Clone(s.list), t)
	ids := append(cloneIDs(s.ids), s.newID())
	return s.commit("add", next, ids)
}

// Update replaces the record at index with t.
func (s *Store) Update(t model.Todo, index int) error {
	if err := s.check("update", index); err != nil {
		return err
	}
	next := model.Clone(s.list)
	next[index] = t
	return s.commit("update", next, s.ids)
}

// Remove deletes the record at index; later records shift left by one.
func (s *Store) Remove(index int) error {
	if err := s.check("remove", index); err != nil {
		return err
	}
	next := make([]model.Todo, 0, len(s.list)-1)
	next = append(next, s.list[:index]...)
	next = append(next, s.list[index+1:]...)

	ids := make([]string, 0, len(s.ids)-1)
	ids = append(ids, s.ids[:index]...)
	ids = append(ids, s.ids[index+1:]...)
	return s.commit("remove", next, ids)
}

// SetAllCompleted sets every record's completion flag to done.
func (s *Store) SetAllCompleted(done bool) error {
	next := model.Clone(s.list)
	for i := range next {
		next[i].IsCompleted = done
	}
	return s.commit("set-all-completed", next, s.ids)
}

// ClearCompleted removes every completed record.
func (s *Store) ClearCompleted() error {
	next := make([]model.Todo, 0, len(s.list))
	ids := make([]string, 0, len(s.ids))
	for i, t := range s.list {
		if t.IsCompleted {
			continue
		}
		next = append(next, t)
		ids = append(ids, s.ids[i])
	}
	return s.commit("clear-completed", next, ids)
}

// Reload replaces the list with a fresh read from the persister. Records
// still present keep their ids. On error the current list is kept.
func (s *Store) Reload() error {
	list, err := s.p.Load()
	if err != nil {
		return fmt.Errorf("reload todos: %w", err)
	}
	next := model.Clone(list)
	s.ids = s.carryIDs(next)
	s.list = next
	s.logger.Debug("reloaded todos", "count", len(list))
	return nil
}

func (s *Store) commit(op string, next []model.Todo, ids []string) error {
	if err := s.p.Save(next); err != nil {
		s.logger.Error("save failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.list, s.ids = next, ids
	s.logger.Debug("todos changed", "op", op, "count", len(next))
	return nil
}

func (s *Store) check(op string, index int) error {
	if index < 0 || index >= len(s.list) {
		return &IndexError{Op: op, Index: index, Len: len(s.list)}
	}
	return nil
}

func (s *Store) freshIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = s.newID()
	}
	return ids
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
