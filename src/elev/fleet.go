package elev

import (
	"fmt"
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"multivator/src/types"
)

// NewFleet builds fresh working state from persisted records. Records are
// deep-copied, so the cycle never aliases the caller's stop lists.
//   - fleet order is the order of records
//   - a car under maintenance starts non-operational, every other car starts operational
//   - the door is closed, the car idle and not selected at cycle start
func NewFleet(records []types.ElevatorRecord) (*Fleet, error) {
	fleet := &Fleet{
		order: make([]int64, 0, len(records)),
		cars:  make(map[int64]*ElevState, len(records)),
	}
	for i, rec := range records {
		if _, dup := fleet.cars[rec.ID]; dup {
			return nil, types.Errorf(types.InvalidInput, "elevator %d listed twice", rec.ID)
		}
		state := new(ElevState)
		if err := deepcopy.Copy(state, rec); err != nil {
			return nil, fmt.Errorf("failed to copy elevator %d - %w", rec.ID, err)
		}
		state.Ordinal = i
		state.Operational = !rec.Maintenance
		state.DoorOpen = false
		state.Selected = false
		state.Behaviour = types.Idle
		if state.Dir == 0 {
			state.Dir = types.MD_Up
		}
		fleet.order = append(fleet.order, rec.ID)
		fleet.cars[rec.ID] = state
	}
	slog.Debug("Fleet built", "size", len(records))
	return fleet, nil
}

// SetPositions overwrites the floor of every car, in fleet order.
// positions must have one entry per car.
func (f *Fleet) SetPositions(positions []int) error {
	if len(positions) != len(f.order) {
		return types.Errorf(types.InvalidInput, "got %d positions for %d elevators", len(positions), len(f.order))
	}
	for i, id := range f.order {
		f.cars[id].Floor = positions[i]
	}
	return nil
}

// ApplyTo copies the escaping fields of the car back onto rec: floor,
// direction, operability, selection and stops. Identity and maintenance
// state of rec are left as they were.
func (e *ElevState) ApplyTo(rec *types.ElevatorRecord) error {
	if rec.ID != e.ID {
		return types.Errorf(types.Internal, "cannot apply elevator %d onto record %d", e.ID, rec.ID)
	}
	var stops []int
	if err := deepcopy.Copy(&stops, e.Stops); err != nil {
		return fmt.Errorf("failed to copy stops of elevator %d - %w", e.ID, err)
	}
	if stops == nil {
		stops = []int{}
	}
	rec.Floor = e.Floor
	rec.Dir = e.Dir
	rec.Operational = e.Operational
	rec.Selected = e.Selected
	rec.Stops = stops
	return nil
}
