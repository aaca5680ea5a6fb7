package model

// Todo is one task entry. Records carry no identity of their own; the
// owning list addresses them by position.
type Todo struct {
	Label       string `json:"label"`
	IsCompleted bool   `json:"isCompleted"`
}

// New returns an open todo with the given label. Empty labels are allowed.
func New(label string) Todo {
	return Todo{Label: label}
}

// Toggled returns a copy with the completion flag flipped.
func (t Todo) Toggled() Todo {
	t.IsCompleted = !t.IsCompleted
	return t
}

// Relabeled returns a copy carrying label.
func (t Todo) Relabeled(label string) Todo {
	t.Label = label
	return t
}

// Clone copies a list so callers can't alias the owner's backing array.
func Clone(list []Todo) []Todo {
	out := make([]Todo, len(list))
	copy(out, list)
	return out
}

// Counts reports how many todos are done and how many are still open.
func Counts(list []Todo) (completed, active int) {
	for _, t := range list {
		if t.IsCompleted {
			completed++
		} else {
			active++
		}
	}
	return
}
