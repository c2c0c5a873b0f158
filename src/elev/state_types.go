// State types are defined in elev package so the fleet can hand out pointers
// to per-cycle working state.
package elev

import (
	"multivator/src/types"
)

// ElevState is the working state of one car for the duration of a dispatch cycle.
type ElevState struct {
	ID          int64
	Name        string
	BuildingID  int
	Ordinal     int
	Floor       int
	Dir         types.MotorDirection
	Operational bool
	Selected    bool
	DoorOpen    bool
	Stops       []int
	Behaviour   types.ElevBehaviour
}

// Snapshot records the car as it is right now.
func (e *ElevState) Snapshot(door *types.DoorState) types.StatusSnapshot {
	return types.StatusSnapshot{
		ElevatorID:  e.ID,
		Floor:       e.Floor,
		Direction:   e.Dir,
		Operational: e.Operational,
		Door:        door,
	}
}

// Fleet owns every car of one cycle, addressed by id, in a fixed order.
type Fleet struct {
	order []int64
	cars  map[int64]*ElevState
}

func (f *Fleet) Len() int {
	return len(f.order)
}

// IDs returns the car ids in fleet order.
func (f *Fleet) IDs() []int64 {
	return append([]int64(nil), f.order...)
}

func (f *Fleet) Get(id int64) (*ElevState, bool) {
	e, ok := f.cars[id]
	return e, ok
}

// At returns the car with the given ordinal.
func (f *Fleet) At(ordinal int) *ElevState {
	return f.cars[f.order[ordinal]]
}

// ForEach calls action for every car in fleet order.
func (f *Fleet) ForEach(action func(e *ElevState)) {
	for _, id := range f.order {
		action(f.cars[id])
	}
}
