package todo

import "github.com/Makepad-fr/todos/internal/model"

// Records are addressed by index. The ids below give callers a handle that
// survives other records being removed; they live only as long as the Store.

// IDAt returns the id of the record at index.
func (s *Store) IDAt(index int) (string, error) {
	if err := s.check("id", index); err != nil {
		return "", err
	}
	return s.ids[index], nil
}

// IndexOf returns the current index of the record with id.
func (s *Store) IndexOf(id string) (int, bool) {
	for i, v := range s.ids {
		if v == id {
			return i, true
		}
	}
	return -1, false
}

// UpdateByID replaces the record with id.
func (s *Store) UpdateByID(id string, t model.Todo) error {
	i, ok := s.IndexOf(id)
	if !ok {
		return ErrUnknownID
	}
	return s.Update(t, i)
}

// RemoveByID deletes the record with id.
func (s *Store) RemoveByID(id string) error {
	i, ok := s.IndexOf(id)
	if !ok {
		return ErrUnknownID
	}
	return s.Remove(i)
}

// carryIDs assigns ids for next, a freshly loaded list. Each record takes the
// id of the first unclaimed equal record in the current list, scanning in
// order; the rest get new ids.
func (s *Store) carryIDs(next []model.Todo) []string {
	claimed := make([]bool, len(s.list))
	ids := make([]string, len(next))
	for i, t := range next {
		for j, old := range s.list {
			if !claimed[j] && old == t {
				claimed[j] = true
				ids[i] = s.ids[j]
				break
			}
		}
		if ids[i] == "" {
			ids[i] = s.newID()
		}
	}
	return ids
}
