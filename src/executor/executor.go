package executor

import (
	"log/slog"

	"multivator/src/config"
	"multivator/src/elev"
	"multivator/src/types"
	"multivator/src/utils"
)

// Recorder receives the snapshots of one car, in order.
type Recorder interface {
	// Record appends a door or status snapshot.
	Record(s types.StatusSnapshot)
	// RecordMove appends the snapshot taken after a movement tick.
	RecordMove(s types.StatusSnapshot)
}

// BoundsGuard turns configured floor bounds into a FloorGuard. Nil bounds
// give a nil guard.
func BoundsGuard(bounds *config.FloorBounds) FloorGuard {
	if bounds == nil {
		return nil
	}
	return bounds.Contains
}

// Simulate drives the car through all of its stops using policy and
// records what happens. It is called once per selected car after assignment.
//   - returns a NonOperationalMove or FloorOutOfBounds error if the car got
//     stuck; the remaining stops stay on the car
//   - a car without stops is left alone
func Simulate(e *elev.ElevState, policy string, guard FloorGuard, rec Recorder) error {
	if len(e.Stops) == 0 {
		return nil
	}
	slog.Debug("Simulating elevator",
		"elevator", e.Name,
		"floor", e.Floor,
		"direction", e.Dir,
		"stops", utils.FormatFloors(e.Stops),
		"policy", policy)

	var err error
	switch policy {
	case config.PolicyNearest:
		err = serviceNearest(e, guard, rec)
	case config.PolicyScan:
		err = serviceScan(e, guard, rec)
	default:
		return types.Errorf(types.Internal, "unknown servicing policy %q", policy)
	}
	if err != nil {
		slog.Warn("Elevator stopped before serving all stops",
			"elevator", e.Name,
			"floor", e.Floor,
			"remaining", utils.FormatFloors(e.Stops),
			"error", err)
		return err
	}
	slog.Debug("Elevator finished", "elevator", e.Name, "floor", e.Floor, "operational", e.Operational)
	return nil
}
