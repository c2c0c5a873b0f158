package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multivator/src/config"
	"multivator/src/elev"
	"multivator/src/trace"
	"multivator/src/types"
)

// taggedRecorder remembers which snapshots came from movement ticks.
type taggedRecorder struct {
	snapshots []types.StatusSnapshot
	isMove    []bool
}

func (r *taggedRecorder) Record(s types.StatusSnapshot) {
	r.snapshots = append(r.snapshots, s)
	r.isMove = append(r.isMove, false)
}

func (r *taggedRecorder) RecordMove(s types.StatusSnapshot) {
	r.snapshots = append(r.snapshots, s)
	r.isMove = append(r.isMove, true)
}

func (r *taggedRecorder) doorOpenFloors() []int {
	var floors []int
	for _, s := range r.snapshots {
		if s.Door != nil && *s.Door == types.DoorStateOpen {
			floors = append(floors, s.Floor)
		}
	}
	return floors
}

func newCar(floor int, stops ...int) *elev.ElevState {
	return &elev.ElevState{
		ID:          1,
		Name:        "Elevator 1",
		Floor:       floor,
		Dir:         types.MD_Up,
		Operational: true,
		Selected:    true,
		Stops:       stops,
	}
}

func snap(floor int, dir types.MotorDirection, door *types.DoorState) types.StatusSnapshot {
	return types.StatusSnapshot{ElevatorID: 1, Floor: floor, Direction: dir, Operational: true, Door: door}
}

func opened(floor int, dir types.MotorDirection) types.StatusSnapshot {
	return snap(floor, dir, doorState(types.DoorStateOpen))
}

func closed(floor int, dir types.MotorDirection) types.StatusSnapshot {
	return snap(floor, dir, doorState(types.DoorStateClosed))
}

func status(floor int, dir types.MotorDirection) types.StatusSnapshot {
	return snap(floor, dir, nil)
}

func TestSimulateRoundTrip(t *testing.T) {
	for _, policy := range []string{config.PolicyNearest, config.PolicyScan} {
		t.Run(policy, func(t *testing.T) {
			car := newCar(4, 4)
			acc := trace.NewAccumulator()
			require.NoError(t, Simulate(car, policy, nil, acc))

			want := []types.StatusSnapshot{
				opened(4, types.MD_Up),
				closed(4, types.MD_Up),
				status(4, types.MD_Up),
			}
			if diff := cmp.Diff(want, acc.Snapshots()); diff != "" {
				t.Errorf("Unexpected snapshots (-want +got): %s", diff)
			}
			assert.Equal(t, 0, acc.Moves())
			assert.Empty(t, car.Stops)
		})
	}
}

func TestSimulateNearest(t *testing.T) {
	tests := []struct {
		name  string
		floor int
		stops []int
		want  []types.StatusSnapshot
	}{
		{
			name:  "closest stop first",
			floor: 0,
			stops: []int{3, 1},
			want: []types.StatusSnapshot{
				status(1, types.MD_Up),
				opened(1, types.MD_Up), closed(1, types.MD_Up), status(1, types.MD_Up),
				status(2, types.MD_Up),
				status(3, types.MD_Up),
				opened(3, types.MD_Up), closed(3, types.MD_Up), status(3, types.MD_Up),
			},
		},
		{
			name:  "duplicate floor consumed one per arrival",
			floor: 2,
			stops: []int{0, 0},
			want: []types.StatusSnapshot{
				status(1, types.MD_Down),
				status(0, types.MD_Down),
				opened(0, types.MD_Down), closed(0, types.MD_Down), status(0, types.MD_Down),
				opened(0, types.MD_Down), closed(0, types.MD_Down), status(0, types.MD_Down),
			},
		},
		{
			name:  "reverses after serving the near side",
			floor: 5,
			stops: []int{8, 4},
			want: []types.StatusSnapshot{
				status(4, types.MD_Down),
				opened(4, types.MD_Down), closed(4, types.MD_Down), status(4, types.MD_Down),
				status(5, types.MD_Up),
				status(6, types.MD_Up),
				status(7, types.MD_Up),
				status(8, types.MD_Up),
				opened(8, types.MD_Up), closed(8, types.MD_Up), status(8, types.MD_Up),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := newCar(tt.floor, tt.stops...)
			acc := trace.NewAccumulator()
			require.NoError(t, Simulate(car, config.PolicyNearest, nil, acc))

			if diff := cmp.Diff(tt.want, acc.Snapshots()); diff != "" {
				t.Errorf("Unexpected snapshots (-want +got): %s", diff)
			}
			assert.Equal(t, types.MD_Up, car.Dir)
			assert.True(t, car.Operational)
			assert.False(t, car.Selected)
			assert.Equal(t, []int{}, car.Stops)
			assert.Equal(t, types.Idle, car.Behaviour)
		})
	}
}

func TestSimulateScan(t *testing.T) {
	tests := []struct {
		name       string
		floor      int
		stops      []int
		wantVisits []int
		wantMoves  int
	}{
		{
			name:       "closer side first",
			floor:      5,
			stops:      []int{7, 4, 9, 1},
			wantVisits: []int{4, 1, 7, 9},
			wantMoves:  1 + 3 + 6 + 2,
		},
		{
			name:       "tie goes up",
			floor:      5,
			stops:      []int{3, 7},
			wantVisits: []int{7, 3},
			wantMoves:  2 + 4,
		},
		{
			name:       "only below",
			floor:      6,
			stops:      []int{2, 5},
			wantVisits: []int{5, 2},
			wantMoves:  4,
		},
		{
			name:       "current floor first and duplicates served once",
			floor:      3,
			stops:      []int{6, 3, 6, 4},
			wantVisits: []int{3, 4, 6},
			wantMoves:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := newCar(tt.floor, tt.stops...)
			rec := &taggedRecorder{}
			require.NoError(t, Simulate(car, config.PolicyScan, nil, rec))

			assert.Equal(t, tt.wantVisits, rec.doorOpenFloors())
			moves := 0
			for _, m := range rec.isMove {
				if m {
					moves++
				}
			}
			assert.Equal(t, tt.wantMoves, moves)
			assert.Equal(t, types.MD_Up, car.Dir)
			assert.False(t, car.Operational, "scan leaves the car flagged non-operational")
			assert.False(t, car.Selected)
			assert.Equal(t, []int{}, car.Stops)
		})
	}
}

func TestSimulateMonotonicTicks(t *testing.T) {
	fixtures := []struct {
		floor int
		stops []int
	}{
		{floor: 0, stops: []int{9, 3, 3, 6}},
		{floor: 10, stops: []int{2, 12, 7, 0}},
		{floor: -2, stops: []int{-5, 4}},
	}
	for _, policy := range []string{config.PolicyNearest, config.PolicyScan} {
		for _, fx := range fixtures {
			car := newCar(fx.floor, fx.stops...)
			rec := &taggedRecorder{}
			require.NoError(t, Simulate(car, policy, nil, rec))
			require.Empty(t, car.Stops)

			prev := fx.floor
			for i, s := range rec.snapshots {
				if rec.isMove[i] {
					assert.Equal(t, int(s.Direction), s.Floor-prev, "%s tick %d from %d", policy, i, fx.floor)
				} else {
					assert.Equal(t, prev, s.Floor, "%s: floor changed outside a tick", policy)
				}
				prev = s.Floor
			}
		}
	}
}

func TestStepNonOperational(t *testing.T) {
	car := newCar(2, 5)
	car.Operational = false

	assert.Equal(t, StepNonOperational, Step(car, nil))
	assert.Equal(t, 2, car.Floor)
	assert.Equal(t, []int{5}, car.Stops)
}

func TestStepGuard(t *testing.T) {
	car := newCar(3, 5)
	guard := BoundsGuard(&config.FloorBounds{Min: 0, Max: 3})

	assert.Equal(t, StepOutOfBounds, Step(car, guard))
	assert.Equal(t, 3, car.Floor)

	car.Dir = types.MD_Down
	assert.Equal(t, StepOK, Step(car, guard))
	assert.Equal(t, 2, car.Floor)
	assert.Equal(t, types.Moving, car.Behaviour)

	assert.Nil(t, BoundsGuard(nil))
}

func TestSimulateStuck(t *testing.T) {
	tests := []struct {
		name       string
		car        func() *elev.ElevState
		guard      FloorGuard
		wantCode   string
		wantFloor  int
		wantStops  []int
		wantMoves  int
		wantRecord int
	}{
		{
			name: "marked out of service before moving",
			car: func() *elev.ElevState {
				c := newCar(0, 3)
				c.Operational = false
				return c
			},
			wantCode:  types.NonOperationalMove,
			wantFloor: 0,
			wantStops: []int{3},
		},
		{
			name: "floor bounds stop the car",
			car: func() *elev.ElevState {
				return newCar(2, 1, 5)
			},
			guard:      BoundsGuard(&config.FloorBounds{Min: 0, Max: 3}),
			wantCode:   types.FloorOutOfBounds,
			wantFloor:  3,
			wantStops:  []int{5},
			wantMoves:  3,
			wantRecord: 3 + 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := tt.car()
			acc := trace.NewAccumulator()
			err := Simulate(car, config.PolicyNearest, tt.guard, acc)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, types.CanonicalCode(err))
			assert.Equal(t, tt.wantFloor, car.Floor)
			assert.Equal(t, tt.wantStops, car.Stops)
			assert.Equal(t, tt.wantMoves, acc.Moves())
			assert.Equal(t, tt.wantRecord, acc.Len())
			assert.True(t, car.Selected, "a stuck car is not reset")
		})
	}
}

func TestSimulateNoStops(t *testing.T) {
	car := newCar(3)
	acc := trace.NewAccumulator()
	require.NoError(t, Simulate(car, config.PolicyScan, nil, acc))
	assert.Equal(t, 0, acc.Len())
	assert.True(t, car.Selected)
}

func TestSimulateUnknownPolicy(t *testing.T) {
	err := Simulate(newCar(0, 1), "random", nil, trace.NewAccumulator())
	assert.Equal(t, types.Internal, types.CanonicalCode(err))
}

func TestChooseDirection(t *testing.T) {
	tests := []struct {
		name  string
		floor int
		stops []int
		want  types.DirnBehaviourPair
	}{
		{name: "both sides, below closer", floor: 5, stops: []int{9, 4}, want: types.DirnBehaviourPair{Dir: types.MD_Down, Behaviour: types.Moving}},
		{name: "both sides, above closer", floor: 5, stops: []int{6, 1}, want: types.DirnBehaviourPair{Dir: types.MD_Up, Behaviour: types.Moving}},
		{name: "only above", floor: 5, stops: []int{8}, want: types.DirnBehaviourPair{Dir: types.MD_Up, Behaviour: types.Moving}},
		{name: "only below", floor: 5, stops: []int{0}, want: types.DirnBehaviourPair{Dir: types.MD_Down, Behaviour: types.Moving}},
		{name: "nothing to do", floor: 5, stops: []int{5}, want: types.DirnBehaviourPair{Dir: types.MD_Up, Behaviour: types.Idle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chooseDirection(newCar(tt.floor, tt.stops...)))
		})
	}
}

func TestPartition(t *testing.T) {
	above, below := partition([]int{2, 9, 5, 0, 7, 5, 3}, 5)
	assert.Equal(t, []int{7, 9}, above)
	assert.Equal(t, []int{3, 2, 0}, below)
}
