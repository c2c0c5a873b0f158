package types

import "fmt"

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "Up"
	case MD_Down:
		return "Down"
	}
	return fmt.Sprintf("MotorDirection(%d)", int(d))
}

func (d MotorDirection) MarshalText() ([]byte, error) {
	switch d {
	case MD_Up, MD_Down:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("invalid motor direction %d", int(d))
}

func (d *MotorDirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Up", "UP", "up":
		*d = MD_Up
	case "Down", "DOWN", "down":
		*d = MD_Down
	default:
		return fmt.Errorf("invalid motor direction %q", text)
	}
	return nil
}

// DirectionTowards returns the direction a car at from takes to reach to.
// A car already at the target counts as going up.
func DirectionTowards(from, to int) MotorDirection {
	if from <= to {
		return MD_Up
	}
	return MD_Down
}

type ElevBehaviour int

const (
	Idle ElevBehaviour = iota
	Moving
	DoorOpen
	DoorClosed
)

func (b ElevBehaviour) String() string {
	return [...]string{"Idle", "Moving", "DoorOpen", "DoorClosed"}[b]
}

// DirnBehaviourPair is a direction together with what the car does next.
type DirnBehaviourPair struct {
	Dir       MotorDirection
	Behaviour ElevBehaviour
}

type DoorState string

const (
	DoorStateOpen   DoorState = "Open"
	DoorStateClosed DoorState = "Closed"
)

// StatusSnapshot is one observation of a car during simulation. Door is nil
// for movement ticks and post-arrival status.
type StatusSnapshot struct {
	ElevatorID  int64          `json:"elevatorId"`
	Floor       int            `json:"currentFloor"`
	Direction   MotorDirection `json:"direction"`
	Operational bool           `json:"operational"`
	Door        *DoorState     `json:"door,omitempty"`
}

type Building struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ElevatorRecord is the persisted form of a car.
type ElevatorRecord struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	BuildingID  int            `json:"buildingId"`
	Floor       int            `json:"currentFloor"`
	DoorOpen    bool           `json:"doorOpen"`
	Operational bool           `json:"operational"`
	Maintenance bool           `json:"maintenance"`
	Selected    bool           `json:"selected"`
	Dir         MotorDirection `json:"direction"`
	Stops       []int          `json:"stops"`
}
