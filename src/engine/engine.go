// Package engine runs dispatch cycles against the stored fleet of a building
// and exposes the maintenance operations on single cars.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/util/sets"

	"multivator/src/config"
	"multivator/src/dispatcher"
	"multivator/src/elev"
	"multivator/src/executor"
	"multivator/src/metrics"
	"multivator/src/trace"
	"multivator/src/types"
)

// Store persists buildings and elevator records between cycles.
type Store interface {
	CreateBuilding(name string) types.Building
	GetBuilding(id int) (types.Building, error)
	ElevatorNames(buildingID int) (sets.Set[string], error)
	CreateElevators(buildingID int, names []string) ([]types.ElevatorRecord, error)
	ListElevators(buildingID int) ([]types.ElevatorRecord, error)
	GetElevator(id int64) (types.ElevatorRecord, error)
	UpdateElevator(id int64, fn func(rec *types.ElevatorRecord)) (types.ElevatorRecord, error)
	SaveElevators(recs []types.ElevatorRecord) error
}

type Engine struct {
	store Store
	cfg   config.Config
	guard executor.FloorGuard

	// mu serializes cycles and every other write to the store.
	mu sync.Mutex
}

func New(store Store, cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, types.Errorf(types.InvalidInput, "invalid config - %v", err)
	}
	metrics.Register()
	return &Engine{
		store: store,
		cfg:   cfg,
		guard: executor.BoundsGuard(cfg.Bounds),
	}, nil
}

func (en *Engine) CreateBuilding(name string) (types.Building, error) {
	if name == "" {
		return types.Building{}, types.Errorf(types.InvalidInput, "building name must not be empty")
	}
	en.mu.Lock()
	defer en.mu.Unlock()
	b := en.store.CreateBuilding(name)
	slog.Info("Building created", "building", b.ID, "name", b.Name)
	return b, nil
}

// InitializeFleet adds count new cars to a building. Names are
// "Elevator 1", "Elevator 2", ... skipping the ones already in use.
func (en *Engine) InitializeFleet(buildingID, count int) ([]types.ElevatorRecord, error) {
	if err := validateFleetRequest(buildingID, count); err != nil {
		return nil, err
	}
	en.mu.Lock()
	defer en.mu.Unlock()

	used, err := en.store.ElevatorNames(buildingID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for n := 1; len(names) < count; n++ {
		name := fmt.Sprintf("%s %d", config.ElevatorNamePrefix, n)
		if used.Has(name) {
			continue
		}
		names = append(names, name)
	}
	created, err := en.store.CreateElevators(buildingID, names)
	if err != nil {
		return nil, err
	}
	slog.Info("Fleet initialized", "building", buildingID, "created", len(created))
	return created, nil
}

// RunDispatchCycle assigns floorRequests to the cars of a building, simulates
// every selected car and persists the final state of the fleet.
//   - invalid input is rejected before anything is read or written
//   - currentPositions of the wrong length are replaced with all zeros
//   - a car that gets stuck is reported on its summary and in DispatchResult.Err,
//     the other cars are not affected
func (en *Engine) RunDispatchCycle(buildingID int, floorRequests []int, rideAlongQueues [][]int, currentPositions []int) (*trace.DispatchResult, error) {
	start := time.Now()
	if err := validateCycle(buildingID, floorRequests, rideAlongQueues, en.cfg.Bounds); err != nil {
		return nil, err
	}

	en.mu.Lock()
	defer en.mu.Unlock()

	building, err := en.store.GetBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	records, err := en.store.ListElevators(buildingID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && len(floorRequests) > 0 {
		return nil, types.Errorf(types.ResourceNotFound, "building %d has no elevators", buildingID)
	}

	fleet, err := elev.NewFleet(records)
	if err != nil {
		return nil, err
	}
	if len(currentPositions) != fleet.Len() {
		slog.Info("Positions do not match fleet, starting every car at floor 0",
			"positions", len(currentPositions), "elevators", fleet.Len())
		currentPositions = make([]int, fleet.Len())
	}
	if err := fleet.SetPositions(currentPositions); err != nil {
		return nil, err
	}

	builder := trace.NewBuilder(building)
	fleet.ForEach(func(e *elev.ElevState) {
		builder.Add(carOf(e))
	})

	assignment := dispatcher.Assign(fleet, floorRequests, rideAlongQueues)
	for _, id := range fleet.IDs() {
		plan, ok := assignment.Plans[id]
		if !ok {
			continue
		}
		if err := builder.Assign(id, plan.Direction, plan.Stops); err != nil {
			return nil, err
		}
	}

	outcomes, err := en.simulate(fleet, assignment)
	if err != nil {
		return nil, err
	}
	for ordinal := range fleet.Len() {
		e := fleet.At(ordinal)
		o := outcomes[ordinal]
		if err := builder.Finish(carOf(e), o.acc, o.err); err != nil {
			return nil, err
		}
	}

	for i := range records {
		e, _ := fleet.Get(records[i].ID)
		if err := e.ApplyTo(&records[i]); err != nil {
			return nil, err
		}
	}
	if err := en.store.SaveElevators(records); err != nil {
		return nil, fmt.Errorf("failed to persist fleet of building %d - %w", buildingID, err)
	}

	elapsed := time.Since(start)
	result := builder.Result(uuid.NewString(), en.cfg.Policy, elapsed)
	en.recordMetrics(assignment, outcomes, len(floorRequests), elapsed)
	slog.Info("Dispatch cycle finished",
		"cycle", result.CycleID,
		"building", buildingID,
		"requests", len(floorRequests),
		"selected", len(assignment.Plans),
		"duration", elapsed)
	return result, nil
}

func (en *Engine) recordMetrics(assignment dispatcher.Assignment, outcomes []outcome, requests int, elapsed time.Duration) {
	policy := en.cfg.Policy
	metrics.RecordFloorRequests(policy, requests)
	for _, round := range assignment.Rounds {
		if round.Saturated {
			metrics.RecordSaturatedRequest()
		}
	}
	for _, o := range outcomes {
		if o.acc != nil {
			metrics.RecordMovementTicks(policy, o.acc.Moves())
		}
		if o.err != nil {
			metrics.RecordStuckElevator(types.CanonicalCode(o.err))
		}
	}
	metrics.RecordDispatchCycle(policy, elapsed)
}

func carOf(e *elev.ElevState) trace.Car {
	return trace.Car{
		ID:          e.ID,
		Name:        e.Name,
		Floor:       e.Floor,
		Dir:         e.Dir,
		Operational: e.Operational,
	}
}
