package executor

import (
	"multivator/src/elev"
	"multivator/src/types"
)

// cycleDoor opens and closes the door at the current floor, recording both.
func cycleDoor(e *elev.ElevState, rec Recorder) {
	e.DoorOpen = true
	e.Behaviour = types.DoorOpen
	rec.Record(e.Snapshot(doorState(types.DoorStateOpen)))

	e.DoorOpen = false
	e.Behaviour = types.DoorClosed
	rec.Record(e.Snapshot(doorState(types.DoorStateClosed)))
}

func doorState(s types.DoorState) *types.DoorState {
	return &s
}
