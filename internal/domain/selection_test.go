package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	var s Selection

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Toggle("a"))
	assert.False(t, s.Contains("a"))
	assert.Equal(t, 0, s.Len())
}

func TestSelection_ToggleGroup(t *testing.T) {
	tests := []struct {
		name     string
		initial  []string
		group    []string
		expected []string
	}{
		{"selects all when none selected", nil, []string{"a", "b"}, []string{"a", "b"}},
		{"selects all when partially selected", []string{"a"}, []string{"a", "b"}, []string{"a", "b"}},
		{"deselects all when all selected", []string{"a", "b", "c"}, []string{"a", "b"}, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.initial...)
			s.ToggleGroup(tt.group)
			assert.Equal(t, tt.expected, s.IDs())
		})
	}
}

func TestSelection_Prune(t *testing.T) {
	s := NewSelection("a", "gone", "b")
	entries := []TimeEntry{{ID: "a"}, {ID: "b"}}

	removed := s.Prune(entries)

	assert.Equal(t, []string{"gone"}, removed)
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestSelection_Apply(t *testing.T) {
	s := NewSelection("b", "c")
	entries := []TimeEntry{{ID: "c"}, {ID: "a"}, {ID: "b"}}

	selected := s.Apply(entries)

	assert.Len(t, selected, 2)
	assert.Equal(t, "c", selected[0].ID)
	assert.Equal(t, "b", selected[1].ID)
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection("a", "b")
	s.Clear()
	assert.Empty(t, s.IDs())
}
