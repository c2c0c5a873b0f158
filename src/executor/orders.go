package executor

import (
	"log/slog"
	"slices"

	"multivator/src/elev"
	"multivator/src/types"
	"multivator/src/utils"
)

// serviceNearest repeatedly drives to the closest remaining stop. Each
// arrival consumes one instance of the floor.
func serviceNearest(e *elev.ElevState, guard FloorGuard, rec Recorder) error {
	for len(e.Stops) > 0 {
		target, _ := utils.Nearest(e.Stops, e.Floor)
		if err := moveTo(e, target, guard, rec); err != nil {
			return err
		}
		cycleDoor(e, rec)
		e.Stops, _ = utils.RemoveOne(e.Stops, e.Floor)
		rec.Record(e.Snapshot(nil))
	}
	reset(e, true)
	return nil
}

// serviceScan sweeps through the stops in one direction, then the other.
//   - stops at the current floor are served before anything else
//   - the sweep starts towards the partition whose nearest stop is closer, up on a tie
//   - each floor visit consumes every pending instance of that floor
func serviceScan(e *elev.ElevState, guard FloorGuard, rec Recorder) error {
	if slices.Contains(e.Stops, e.Floor) {
		arrive(e, rec)
	}

	pair := chooseDirection(e)
	above, below := partition(e.Stops, e.Floor)
	sweeps := [][]int{above, below}
	if pair.Dir == types.MD_Down {
		sweeps = [][]int{below, above}
	}
	slog.Debug("Scan plan", "elevator", e.Name, "floor", e.Floor, "first", pair.Dir,
		"above", utils.FormatFloors(above), "below", utils.FormatFloors(below))

	for _, sweep := range sweeps {
		for _, target := range slices.Compact(sweep) {
			if err := moveTo(e, target, guard, rec); err != nil {
				return err
			}
			arrive(e, rec)
		}
	}
	reset(e, false)
	return nil
}

// arrive serves every pending instance of the current floor.
func arrive(e *elev.ElevState, rec Recorder) {
	cycleDoor(e, rec)
	e.Stops, _ = utils.RemoveAll(e.Stops, e.Floor)
	rec.Record(e.Snapshot(nil))
}

// partition splits floors into those above (ascending) and those below
// (descending) the current floor. Floors equal to current are dropped.
func partition(floors []int, current int) (above, below []int) {
	for _, f := range floors {
		switch {
		case f > current:
			above = append(above, f)
		case f < current:
			below = append(below, f)
		}
	}
	slices.Sort(above)
	slices.Sort(below)
	slices.Reverse(below)
	return above, below
}

// chooseDirection picks where a scan starts.
//  1. If there are stops on both sides, go towards the closer one, up on a tie.
//  2. Otherwise go towards the side that has stops.
//  3. With no stops the car stays idle.
func chooseDirection(e *elev.ElevState) types.DirnBehaviourPair {
	above, below := partition(e.Stops, e.Floor)
	switch {
	case len(above) > 0 && len(below) > 0:
		if e.Floor-below[0] < above[0]-e.Floor {
			return types.DirnBehaviourPair{Dir: types.MD_Down, Behaviour: types.Moving}
		}
		return types.DirnBehaviourPair{Dir: types.MD_Up, Behaviour: types.Moving}
	case len(above) > 0:
		return types.DirnBehaviourPair{Dir: types.MD_Up, Behaviour: types.Moving}
	case len(below) > 0:
		return types.DirnBehaviourPair{Dir: types.MD_Down, Behaviour: types.Moving}
	}
	return types.DirnBehaviourPair{Dir: e.Dir, Behaviour: types.Idle}
}

// reset puts a car that finished its stops back to rest.
func reset(e *elev.ElevState, operational bool) {
	e.Dir = types.MD_Up
	e.Operational = operational
	e.Selected = false
	e.Stops = []int{}
	e.Behaviour = types.Idle
}
