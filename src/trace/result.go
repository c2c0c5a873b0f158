package trace

import (
	"time"

	"go.uber.org/multierr"
)

// DispatchResult is what one dispatch cycle returns to its caller.
type DispatchResult struct {
	CycleID        string            `json:"cycleId"`
	BuildingID     int               `json:"buildingId"`
	BuildingName   string            `json:"buildingName"`
	Policy         string            `json:"policy"`
	Elevators      []ElevatorSummary `json:"data"`
	ProcessingTime float64           `json:"processingTime"`
}

// Err combines the simulation failures of every car. Nil when all cars
// finished their stops.
func (r *DispatchResult) Err() error {
	var err error
	for _, s := range r.Elevators {
		err = multierr.Append(err, s.err)
	}
	return err
}

// Elevator returns the summary of the car with the given id.
func (r *DispatchResult) Elevator(id int64) (ElevatorSummary, bool) {
	for _, s := range r.Elevators {
		if s.ElevatorID == id {
			return s, true
		}
	}
	return ElevatorSummary{}, false
}

// Result assembles the dispatch result from everything added so far.
func (b *Builder) Result(cycleID, policy string, elapsed time.Duration) *DispatchResult {
	return &DispatchResult{
		CycleID:        cycleID,
		BuildingID:     b.building.ID,
		BuildingName:   b.building.Name,
		Policy:         policy,
		Elevators:      b.Summaries(),
		ProcessingTime: elapsed.Seconds(),
	}
}
