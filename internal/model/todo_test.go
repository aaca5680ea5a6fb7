package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsOpen(t *testing.T) {
	td := New("")
	assert.Equal(t, "", td.Label)
	assert.False(t, td.IsCompleted)
}

func TestToggledAndRelabeledReturnCopies(t *testing.T) {
	orig := Todo{Label: "buy milk"}

	toggled := orig.Toggled()
	relabeled := orig.Relabeled("buy oat milk")

	assert.True(t, toggled.IsCompleted)
	assert.Equal(t, "buy oat milk", relabeled.Label)
	assert.Equal(t, Todo{Label: "buy milk"}, orig)
}

func TestCloneDoesNotAlias(t *testing.T) {
	list := []Todo{{Label: "a"}, {Label: "b"}}
	c := Clone(list)
	c[0].Label = "changed"
	assert.Equal(t, "a", list[0].Label)
	assert.Len(t, Clone(nil), 0)
}

func TestCounts(t *testing.T) {
	done, open := Counts([]Todo{
		{Label: "a", IsCompleted: true},
		{Label: "b"},
		{Label: "c"},
	})
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, open)
}
