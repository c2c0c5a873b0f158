package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveOne(t *testing.T) {
	tests := []struct {
		name        string
		floors      []int
		value       int
		want        []int
		wantRemoved bool
	}{
		{name: "single", floors: []int{3, 5}, value: 5, want: []int{3}, wantRemoved: true},
		{name: "duplicates consume one", floors: []int{5, 2, 5}, value: 5, want: []int{2, 5}, wantRemoved: true},
		{name: "missing", floors: []int{1}, value: 4, want: []int{1}, wantRemoved: false},
		{name: "empty", floors: []int{}, value: 4, want: []int{}, wantRemoved: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := RemoveOne(tt.floors, tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestRemoveAll(t *testing.T) {
	got, n := RemoveAll([]int{5, 2, 5, 5}, 5)
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 3, n)
}

func TestNearest(t *testing.T) {
	f, ok := Nearest([]int{8, 2, 6}, 4)
	assert.True(t, ok)
	assert.Equal(t, 2, f, "tie between 2 and 6 goes to the earlier entry")

	f, ok = Nearest([]int{8, 6, 2}, 4)
	assert.True(t, ok)
	assert.Equal(t, 6, f)

	_, ok = Nearest(nil, 4)
	assert.False(t, ok)
}

func TestFormatFloors(t *testing.T) {
	assert.Equal(t, "[0 -2 7]", FormatFloors([]int{0, -2, 7}))
	assert.Equal(t, "[]", FormatFloors(nil))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
	assert.Equal(t, 0, Abs(0))
}
