package engine

import (
	"log/slog"

	"multivator/src/types"
)

func (en *Engine) OpenDoor(id int64) (types.StatusSnapshot, error) {
	return en.update(id, "Door opened", func(rec *types.ElevatorRecord) {
		rec.DoorOpen = true
	})
}

func (en *Engine) CloseDoor(id int64) (types.StatusSnapshot, error) {
	return en.update(id, "Door closed", func(rec *types.ElevatorRecord) {
		rec.DoorOpen = false
	})
}

// MarkNotWorking takes a car out of service until ReturnToService is called.
// It is not selected by any dispatch cycle in between.
func (en *Engine) MarkNotWorking(id int64) (types.StatusSnapshot, error) {
	return en.update(id, "Elevator marked not working", func(rec *types.ElevatorRecord) {
		rec.Maintenance = true
		rec.Operational = false
	})
}

func (en *Engine) ReturnToService(id int64) (types.StatusSnapshot, error) {
	return en.update(id, "Elevator returned to service", func(rec *types.ElevatorRecord) {
		rec.Maintenance = false
		rec.Operational = true
	})
}

// Status returns the stored state of a car, door included.
func (en *Engine) Status(id int64) (types.StatusSnapshot, error) {
	if err := validateElevatorID(id); err != nil {
		return types.StatusSnapshot{}, err
	}
	rec, err := en.store.GetElevator(id)
	if err != nil {
		return types.StatusSnapshot{}, err
	}
	return statusOf(rec), nil
}

func (en *Engine) update(id int64, msg string, fn func(rec *types.ElevatorRecord)) (types.StatusSnapshot, error) {
	if err := validateElevatorID(id); err != nil {
		return types.StatusSnapshot{}, err
	}
	en.mu.Lock()
	defer en.mu.Unlock()
	rec, err := en.store.UpdateElevator(id, fn)
	if err != nil {
		return types.StatusSnapshot{}, err
	}
	slog.Info(msg, "elevator", rec.Name, "floor", rec.Floor)
	return statusOf(rec), nil
}

func statusOf(rec types.ElevatorRecord) types.StatusSnapshot {
	door := types.DoorStateClosed
	if rec.DoorOpen {
		door = types.DoorStateOpen
	}
	return types.StatusSnapshot{
		ElevatorID:  rec.ID,
		Floor:       rec.Floor,
		Direction:   rec.Dir,
		Operational: rec.Operational,
		Door:        &door,
	}
}
