package utils

import (
	"fmt"
	"slices"
	"strings"
)

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RemoveOne deletes the first occurrence of value from floors.
// Reports whether anything was removed.
func RemoveOne(floors []int, value int) ([]int, bool) {
	i := slices.Index(floors, value)
	if i < 0 {
		return floors, false
	}
	return slices.Delete(floors, i, i+1), true
}

// RemoveAll deletes every occurrence of value from floors and returns how
// many were removed.
func RemoveAll(floors []int, value int) ([]int, int) {
	before := len(floors)
	floors = slices.DeleteFunc(floors, func(f int) bool { return f == value })
	return floors, before - len(floors)
}

// Nearest returns the floor closest to from. Ties go to the earliest entry.
func Nearest(floors []int, from int) (int, bool) {
	if len(floors) == 0 {
		return 0, false
	}
	best := floors[0]
	for _, f := range floors[1:] {
		if Abs(f-from) < Abs(best-from) {
			best = f
		}
	}
	return best, true
}

// FormatFloors renders floors as "[0 3 5]" for log lines.
func FormatFloors(floors []int) string {
	parts := make([]string, len(floors))
	for i, f := range floors {
		parts[i] = fmt.Sprint(f)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
