package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todos/internal/model"
)

var list = []model.Todo{
	{Label: "a"},
	{Label: "b", IsCompleted: true},
	{Label: "c"},
	{Label: "d", IsCompleted: true},
}

func TestVisible(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []string
	}{
		{All, []string{"a", "b", "c", "d"}},
		{Active, []string{"a", "c"}},
		{Completed, []string{"b", "d"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Visible(list, tt.filter)
			labels := make([]string, 0, len(got))
			for _, td := range got {
				labels = append(labels, td.Label)
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}

func TestVisibleIsPure(t *testing.T) {
	before := model.Clone(list)
	first := Visible(list, Active)
	second := Visible(list, Active)
	assert.Equal(t, first, second)
	assert.Equal(t, before, list)

	assert.Empty(t, Visible(nil, All))
}

func TestEntriesKeepIndices(t *testing.T) {
	got := Entries(list, Completed)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, 3, got[1].Index)
	assert.Equal(t, "d", got[1].Todo.Label)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", All, false},
		{"all", All, false},
		{"Active", Active, false},
		{" COMPLETED ", Completed, false},
		{"done", Completed, false},
		{"pending", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, Active, All.Next())
	assert.Equal(t, Completed, Active.Next())
	assert.Equal(t, All, Completed.Next())
}

func TestSelector(t *testing.T) {
	var s Selector
	assert.Equal(t, All, s.Current())
	s.Set(Completed)
	assert.Equal(t, Completed, s.Current())
}
