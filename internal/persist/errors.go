package persist

import "fmt"

// DecodeError reports a stored blob that is not JSON at all.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ShapeError reports JSON that does not have the shape of a todo list.
// Index is the offending element, or -1 when the document itself is not
// an array.
type ShapeError struct {
	Index int
	Path  string
	Err   error
}

func (e *ShapeError) Error() string {
	loc := "document"
	if e.Index >= 0 {
		loc = fmt.Sprintf("[%d]", e.Index)
		if e.Path != "" {
			loc += "." + e.Path
		}
	}
	return fmt.Sprintf("invalid todo %s: %v", loc, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
