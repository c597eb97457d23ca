package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSetValues(t *testing.T) {
	s := NewIDSet(5, 1, 3, 1, 5)

	assert.Equal(t, []uint{1, 3, 5}, s.Values(), "values are deduplicated and sorted")

	s.Add(2)
	s.Remove(5)
	assert.Equal(t, []uint{1, 2, 3}, s.Values())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))
}

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name       string
		old        []uint
		new        []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{name: "both empty", wantAdd: []uint{}, wantRemove: []uint{}},
		{name: "all new", new: []uint{1, 2}, wantAdd: []uint{1, 2}, wantRemove: []uint{}},
		{name: "all removed", old: []uint{1, 2}, wantAdd: []uint{}, wantRemove: []uint{1, 2}},
		{name: "overlap", old: []uint{1, 2, 3}, new: []uint{2, 3, 4}, wantAdd: []uint{4}, wantRemove: []uint{1}},
		{name: "unchanged", old: []uint{1, 2}, new: []uint{2, 1}, wantAdd: []uint{}, wantRemove: []uint{}},
		{name: "duplicates in input", old: []uint{1, 1, 2}, new: []uint{2, 2, 3, 3}, wantAdd: []uint{3}, wantRemove: []uint{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toAdd, toRemove := DiffIDs(tt.old, tt.new)
			assert.Equal(t, tt.wantAdd, toAdd)
			assert.Equal(t, tt.wantRemove, toRemove)

			// The two result sets never intersect.
			added := NewIDSet(toAdd...)
			for _, id := range toRemove {
				assert.False(t, added.Contains(id), "id %d in both toAdd and toRemove", id)
			}
		})
	}
}
