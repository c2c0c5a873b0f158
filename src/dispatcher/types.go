package dispatcher

import (
	"multivator/src/types"
)

// Plan is what a car received during one assignment pass.
type Plan struct {
	Direction types.MotorDirection
	Stops     []int
}

// Round records one selection: which car took which request.
type Round struct {
	Floor      int
	ElevatorID int64
	Penalty    int
	// Saturated is set when every car was already selected and the pass
	// fell back to the lowest ordinal car.
	Saturated bool
}

type Assignment struct {
	Plans  map[int64]Plan
	Rounds []Round
}

// Selected reports whether the car received anything in this pass.
func (a Assignment) Selected(id int64) bool {
	_, ok := a.Plans[id]
	return ok
}
