package dispatcher

import (
	"log/slog"
	"slices"

	"multivator/src/config"
	"multivator/src/elev"
	"multivator/src/types"
	"multivator/src/utils"
)

// Assign hands every request to the nearest car not yet selected in this pass.
//   - requests are served in ascending order, the caller's slice is not touched
//   - the chosen car gets the request floor plus queues[i mod len(queues)] appended to its stops
//   - cars that got nothing are taken out of service for the cycle
//   - with no requests the fleet is left untouched
//
// queues must be non-empty when requests is non-empty.
func Assign(fleet *elev.Fleet, requests []int, queues [][]int) Assignment {
	assignment := Assignment{Plans: make(map[int64]Plan)}
	if len(requests) == 0 || fleet.Len() == 0 {
		return assignment
	}

	sorted := slices.Clone(requests)
	slices.Sort(sorted)

	for i, floor := range sorted {
		assignee, cost := findAssignee(fleet, floor)
		saturated := cost == config.SelectedPenalty
		queue := queues[i%len(queues)]

		assignee.Stops = append(assignee.Stops, floor)
		assignee.Stops = append(assignee.Stops, queue...)
		assignee.Dir = types.DirectionTowards(assignee.Floor, floor)
		assignee.Selected = true

		plan := assignment.Plans[assignee.ID]
		plan.Direction = assignee.Dir
		plan.Stops = append(plan.Stops, floor)
		plan.Stops = append(plan.Stops, queue...)
		assignment.Plans[assignee.ID] = plan

		assignment.Rounds = append(assignment.Rounds, Round{
			Floor:      floor,
			ElevatorID: assignee.ID,
			Penalty:    cost,
			Saturated:  saturated,
		})
		if saturated {
			slog.Warn("Every elevator already selected, falling back to first elevator",
				"floor", floor, "elevator", assignee.Name)
		}
		slog.Debug("Assigned request",
			"floor", floor,
			"elevator", assignee.Name,
			"distance", cost,
			"stops", utils.FormatFloors(assignee.Stops),
			"direction", assignee.Dir)
	}

	fleet.ForEach(func(e *elev.ElevState) {
		if !e.Selected {
			e.Operational = false
			slog.Debug("Elevator not selected, out of service for this cycle", "elevator", e.Name)
		}
	})
	return assignment
}

// findAssignee returns the car with the lowest penalty for floor. Ties go to
// the lowest ordinal.
func findAssignee(fleet *elev.Fleet, floor int) (*elev.ElevState, int) {
	assignee := fleet.At(0)
	lowest := penalty(assignee, floor)
	for ordinal := 1; ordinal < fleet.Len(); ordinal++ {
		candidate := fleet.At(ordinal)
		if cost := penalty(candidate, floor); cost < lowest {
			assignee, lowest = candidate, cost
		}
	}
	return assignee, lowest
}
