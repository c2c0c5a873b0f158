package engine

import (
	"go.uber.org/multierr"

	"multivator/src/config"
	"multivator/src/types"
)

func validateBuildingID(buildingID int) error {
	if buildingID <= 0 {
		return types.Errorf(types.InvalidInput, "building id must be a positive integer, got %d", buildingID)
	}
	return nil
}

func validateElevatorID(id int64) error {
	if id <= 0 {
		return types.Errorf(types.InvalidInput, "elevator id must be a positive integer, got %d", id)
	}
	return nil
}

func validateFleetRequest(buildingID, count int) error {
	err := validateBuildingID(buildingID)
	if count <= 0 {
		err = multierr.Append(err, types.Errorf(types.InvalidInput, "number of elevators must be a positive integer, got %d", count))
	}
	return err
}

// validateCycle checks the shape of a dispatch request. Every problem found
// is reported, not just the first.
func validateCycle(buildingID int, requests []int, queues [][]int, bounds *config.FloorBounds) error {
	err := validateBuildingID(buildingID)
	if requests == nil {
		err = multierr.Append(err, types.Errorf(types.InvalidInput, "floor requests must be a list"))
	}
	switch {
	case queues == nil:
		err = multierr.Append(err, types.Errorf(types.InvalidInput, "ride-along queues must be a list"))
	case len(queues) == 0 && len(requests) > 0:
		err = multierr.Append(err, types.Errorf(types.InvalidInput, "at least one ride-along queue is needed for %d requests", len(requests)))
	}
	if bounds == nil {
		return err
	}
	for _, floor := range requests {
		if !bounds.Contains(floor) {
			err = multierr.Append(err, types.Errorf(types.InvalidInput, "requested floor %d outside [%d, %d]", floor, bounds.Min, bounds.Max))
		}
	}
	for i, queue := range queues {
		for _, floor := range queue {
			if !bounds.Contains(floor) {
				err = multierr.Append(err, types.Errorf(types.InvalidInput, "queue %d floor %d outside [%d, %d]", i, floor, bounds.Min, bounds.Max))
			}
		}
	}
	return err
}
