// Package filter selects which todos a view shows.
package filter

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todos/internal/model"
)

// Filter is a view-level predicate over the list.
type Filter string

const (
	All       Filter = "all"
	Active    Filter = "active"
	Completed Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{All, Active, Completed}

// Parse reads a filter name. Matching is case-insensitive and an empty
// string means All.
func Parse(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Next cycles all → active → completed → all.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Active
	case Active:
		return Completed
	default:
		return All
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t model.Todo) bool {
	switch f {
	case Active:
		return !t.IsCompleted
	case Completed:
		return t.IsCompleted
	default:
		return true
	}
}

// Title is the label a view shows for the filter.
func (f Filter) Title() string {
	switch f {
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}

// Visible returns the todos passing f, in list order.
func Visible(list []model.Todo, f Filter) []model.Todo {
	out := make([]model.Todo, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Entry is a visible todo together with its index in the full list.
type Entry struct {
	Index int
	Todo  model.Todo
}

// Entries is Visible keeping each record's position in list, so a view can
// address the store.
func Entries(list []model.Todo, f Filter) []Entry {
	out := make([]Entry, 0, len(list))
	for i, t := range list {
		if f.Match(t) {
			out = append(out, Entry{Index: i, Todo: t})
		}
	}
	return out
}

// Selector holds the filter a view currently shows. The zero value shows
// All.
type Selector struct {
	current Filter
}

// Current returns the selected filter.
func (s *Selector) Current() Filter {
	if s.current == "" {
		return All
	}
	return s.current
}

// Set selects f.
func (s *Selector) Set(f Filter) { s.current = f }
