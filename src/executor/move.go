package executor

import (
	"log/slog"

	"multivator/src/elev"
	"multivator/src/types"
)

// FloorGuard reports whether a car may enter floor. A nil guard allows every floor.
type FloorGuard func(floor int) bool

type StepResult int

const (
	StepOK StepResult = iota
	StepNonOperational
	StepOutOfBounds
)

func (r StepResult) String() string {
	return [...]string{"Ok", "NonOperationalMove", "FloorOutOfBounds"}[r]
}

// Step moves the car one floor in its current direction. A car out of
// service or a floor rejected by guard leaves the state untouched.
func Step(e *elev.ElevState, guard FloorGuard) StepResult {
	if !e.Operational {
		slog.Warn("Lift is not operational", "elevator", e.Name, "floor", e.Floor)
		return StepNonOperational
	}
	next := e.Floor + int(e.Dir)
	if guard != nil && !guard(next) {
		slog.Warn("Refusing to move past floor bounds", "elevator", e.Name, "floor", e.Floor, "next", next)
		return StepOutOfBounds
	}
	e.Floor = next
	e.Behaviour = types.Moving
	return StepOK
}

func stepError(e *elev.ElevState, res StepResult) error {
	switch res {
	case StepNonOperational:
		return types.Errorf(types.NonOperationalMove, "elevator %d is not operational at floor %d", e.ID, e.Floor)
	case StepOutOfBounds:
		return types.Errorf(types.FloorOutOfBounds, "elevator %d cannot move %s past floor %d", e.ID, e.Dir, e.Floor)
	}
	return nil
}

// moveTo ticks the car towards target, recording one snapshot per tick.
// Direction is only changed when the car actually has to move.
func moveTo(e *elev.ElevState, target int, guard FloorGuard, rec Recorder) error {
	if e.Floor == target {
		return nil
	}
	e.Dir = types.DirectionTowards(e.Floor, target)
	for e.Floor != target {
		if res := Step(e, guard); res != StepOK {
			return stepError(e, res)
		}
		rec.RecordMove(e.Snapshot(nil))
	}
	return nil
}
