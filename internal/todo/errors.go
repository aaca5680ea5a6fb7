package todo

import (
	"errors"
	"fmt"
)

// ErrUnknownID is returned by id-addressed operations when no record
// carries the id.
var ErrUnknownID = errors.New("todo: unknown id")

// IndexError reports an index outside the current list. The list is left
// untouched when it is returned.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index out of range: have %d, got %d", e.Op, e.Len, e.Index)
}
