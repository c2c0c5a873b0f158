package trace

import (
	"fmt"
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"multivator/src/types"
)

// Accumulator collects the snapshots of one car for one simulation call.
// It is not safe for concurrent use; every car gets its own.
type Accumulator struct {
	snapshots []types.StatusSnapshot
	moves     int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{snapshots: []types.StatusSnapshot{}}
}

func (a *Accumulator) Record(s types.StatusSnapshot) {
	a.snapshots = append(a.snapshots, s)
}

func (a *Accumulator) RecordMove(s types.StatusSnapshot) {
	a.moves++
	a.Record(s)
}

// Moves returns the number of movement ticks recorded.
func (a *Accumulator) Moves() int {
	return a.moves
}

func (a *Accumulator) Len() int {
	return len(a.snapshots)
}

// Snapshots returns a deep copy of everything recorded so far.
func (a *Accumulator) Snapshots() []types.StatusSnapshot {
	out := make([]types.StatusSnapshot, 0, len(a.snapshots))
	if err := deepcopy.Copy(&out, a.snapshots); err != nil {
		slog.Error("Failed to copy snapshots", "error", err)
		return append([]types.StatusSnapshot{}, a.snapshots...)
	}
	if out == nil {
		out = []types.StatusSnapshot{}
	}
	return out
}

// ElevatorSummary is the per-car part of a dispatch result.
type ElevatorSummary struct {
	ElevatorID     int64                  `json:"elevatorId"`
	Name           string                 `json:"elevatorName"`
	BuildingID     int                    `json:"buildingId"`
	BuildingName   string                 `json:"buildingName"`
	StartFloor     int                    `json:"startFloor"`
	Direction      types.MotorDirection   `json:"direction"`
	Selected       bool                   `json:"selected"`
	Stops          []int                  `json:"stops"`
	FinalFloor     int                    `json:"currentFloor"`
	FinalDirection types.MotorDirection   `json:"finalDirection"`
	Operational    bool                   `json:"operational"`
	Snapshots      []types.StatusSnapshot `json:"trace"`
	Error          string                 `json:"error,omitempty"`

	err error
}

// Err returns the simulation failure of this car, if any.
func (s ElevatorSummary) Err() error {
	return s.err
}

// Car is what the builder needs to know about a car.
type Car struct {
	ID          int64
	Name        string
	Floor       int
	Dir         types.MotorDirection
	Operational bool
}

// Builder assembles a DispatchResult. Summaries keep the order in which
// cars were added. Not safe for concurrent use.
type Builder struct {
	building  types.Building
	order     []int64
	summaries map[int64]*ElevatorSummary
}

func NewBuilder(building types.Building) *Builder {
	return &Builder{
		building:  building,
		summaries: make(map[int64]*ElevatorSummary),
	}
}

// Add registers a car as it is at the start of simulation.
func (b *Builder) Add(car Car) {
	if _, ok := b.summaries[car.ID]; ok {
		return
	}
	b.order = append(b.order, car.ID)
	b.summaries[car.ID] = &ElevatorSummary{
		ElevatorID:     car.ID,
		Name:           car.Name,
		BuildingID:     b.building.ID,
		BuildingName:   b.building.Name,
		StartFloor:     car.Floor,
		Direction:      car.Dir,
		Stops:          []int{},
		FinalFloor:     car.Floor,
		FinalDirection: car.Dir,
		Operational:    car.Operational,
		Snapshots:      []types.StatusSnapshot{},
	}
}

// Assign records the stops handed to a car and the direction it was sent in.
func (b *Builder) Assign(id int64, dir types.MotorDirection, stops []int) error {
	s, ok := b.summaries[id]
	if !ok {
		return types.Errorf(types.Internal, "elevator %d not part of this result", id)
	}
	s.Selected = true
	s.Direction = dir
	s.Stops = append([]int{}, stops...)
	return nil
}

// Finish records how the car ended up and what it went through. simErr is
// kept on the summary and does not fail the build.
func (b *Builder) Finish(final Car, acc *Accumulator, simErr error) error {
	s, ok := b.summaries[final.ID]
	if !ok {
		return types.Errorf(types.Internal, "elevator %d not part of this result", final.ID)
	}
	s.FinalFloor = final.Floor
	s.FinalDirection = final.Dir
	s.Operational = final.Operational
	if acc != nil {
		s.Snapshots = acc.Snapshots()
	}
	if simErr != nil {
		s.err = fmt.Errorf("elevator %s: %w", s.Name, simErr)
		s.Error = simErr.Error()
	}
	return nil
}

// Summaries returns the summaries in the order cars were added.
func (b *Builder) Summaries() []ElevatorSummary {
	out := make([]ElevatorSummary, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.summaries[id])
	}
	return out
}
