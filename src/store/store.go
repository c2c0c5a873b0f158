// Package store keeps building and elevator records in memory. A single
// goroutine owns the records and serializes every access.
package store

import (
	"fmt"
	"log/slog"

	"github.com/tiendc/go-deepcopy"
	"k8s.io/apimachinery/pkg/util/sets"

	"multivator/src/types"
)

type records struct {
	buildings      map[int]types.Building
	elevators      map[int64]*types.ElevatorRecord
	byBuilding     map[int][]int64
	names          map[int]sets.Set[string]
	nextBuildingID int
	nextElevatorID int64
}

// storeCmd is an operation run by the owner goroutine.
type storeCmd struct {
	Exec func(r *records)
	done chan struct{}
}

type Store struct {
	cmds chan storeCmd
}

// Start starts the owner goroutine. Close stops it.
func Start() *Store {
	r := &records{
		buildings:      make(map[int]types.Building),
		elevators:      make(map[int64]*types.ElevatorRecord),
		byBuilding:     make(map[int][]int64),
		names:          make(map[int]sets.Set[string]),
		nextBuildingID: 1,
		nextElevatorID: 1,
	}
	s := &Store{cmds: make(chan storeCmd)}
	go func() {
		for cmd := range s.cmds {
			cmd.Exec(r)
			close(cmd.done)
		}
	}()
	return s
}

func (s *Store) Close() {
	close(s.cmds)
}

// exec runs fn on the records and waits for it to finish.
func (s *Store) exec(fn func(r *records)) {
	cmd := storeCmd{Exec: fn, done: make(chan struct{})}
	s.cmds <- cmd
	<-cmd.done
}

func (s *Store) CreateBuilding(name string) types.Building {
	var b types.Building
	s.exec(func(r *records) {
		b = types.Building{ID: r.nextBuildingID, Name: name}
		r.nextBuildingID++
		r.buildings[b.ID] = b
		r.names[b.ID] = sets.New[string]()
	})
	slog.Debug("Building created", "id", b.ID, "name", name)
	return b
}

func (s *Store) GetBuilding(id int) (types.Building, error) {
	var (
		b  types.Building
		ok bool
	)
	s.exec(func(r *records) {
		b, ok = r.buildings[id]
	})
	if !ok {
		return types.Building{}, types.Errorf(types.ResourceNotFound, "building %d does not exist", id)
	}
	return b, nil
}

// ElevatorNames returns the names already used in a building.
func (s *Store) ElevatorNames(buildingID int) (sets.Set[string], error) {
	var names sets.Set[string]
	s.exec(func(r *records) {
		if used, ok := r.names[buildingID]; ok {
			names = used.Clone()
		}
	})
	if names == nil {
		return nil, types.Errorf(types.ResourceNotFound, "building %d does not exist", buildingID)
	}
	return names, nil
}

// CreateElevators adds one operational car per name. Either every car is
// created or none is.
func (s *Store) CreateElevators(buildingID int, names []string) ([]types.ElevatorRecord, error) {
	var (
		created []types.ElevatorRecord
		err     error
	)
	s.exec(func(r *records) {
		used, ok := r.names[buildingID]
		if !ok {
			err = types.Errorf(types.ResourceNotFound, "building %d does not exist", buildingID)
			return
		}
		requested := sets.New[string]()
		for _, name := range names {
			if used.Has(name) || requested.Has(name) {
				err = types.Errorf(types.InvalidInput, "elevator name %q already used in building %d", name, buildingID)
				return
			}
			requested.Insert(name)
		}
		for _, name := range names {
			rec := &types.ElevatorRecord{
				ID:          r.nextElevatorID,
				Name:        name,
				BuildingID:  buildingID,
				Operational: true,
				Dir:         types.MD_Up,
				Stops:       []int{},
			}
			r.nextElevatorID++
			r.elevators[rec.ID] = rec
			r.byBuilding[buildingID] = append(r.byBuilding[buildingID], rec.ID)
			used.Insert(name)
			created = append(created, *rec)
		}
	})
	if err != nil {
		return nil, err
	}
	return copyRecords(created)
}

// ListElevators returns copies of the cars of a building in creation order.
func (s *Store) ListElevators(buildingID int) ([]types.ElevatorRecord, error) {
	var (
		list []types.ElevatorRecord
		ok   bool
	)
	s.exec(func(r *records) {
		if _, ok = r.buildings[buildingID]; !ok {
			return
		}
		list = make([]types.ElevatorRecord, 0, len(r.byBuilding[buildingID]))
		for _, id := range r.byBuilding[buildingID] {
			list = append(list, *r.elevators[id])
		}
	})
	if !ok {
		return nil, types.Errorf(types.ResourceNotFound, "building %d does not exist", buildingID)
	}
	return copyRecords(list)
}

func (s *Store) GetElevator(id int64) (types.ElevatorRecord, error) {
	return s.UpdateElevator(id, func(*types.ElevatorRecord) {})
}

// UpdateElevator applies fn to the stored car and returns a copy of the result.
func (s *Store) UpdateElevator(id int64, fn func(rec *types.ElevatorRecord)) (types.ElevatorRecord, error) {
	var (
		out types.ElevatorRecord
		err error
	)
	s.exec(func(r *records) {
		rec, ok := r.elevators[id]
		if !ok {
			err = types.Errorf(types.ResourceNotFound, "elevator %d does not exist", id)
			return
		}
		fn(rec)
		err = deepcopy.Copy(&out, *rec)
	})
	return out, err
}

// SaveElevators overwrites the stored cars with recs. Either every record is
// saved or none is. Names and buildings cannot be changed this way.
func (s *Store) SaveElevators(recs []types.ElevatorRecord) error {
	copies, err := copyRecords(recs)
	if err != nil {
		return err
	}
	s.exec(func(r *records) {
		for _, rec := range copies {
			stored, ok := r.elevators[rec.ID]
			if !ok {
				err = types.Errorf(types.ResourceNotFound, "elevator %d does not exist", rec.ID)
				return
			}
			if stored.Name != rec.Name || stored.BuildingID != rec.BuildingID {
				err = types.Errorf(types.InvalidInput, "elevator %d cannot be renamed or moved", rec.ID)
				return
			}
		}
		for i := range copies {
			r.elevators[copies[i].ID] = &copies[i]
		}
	})
	return err
}

func copyRecords(recs []types.ElevatorRecord) ([]types.ElevatorRecord, error) {
	out := make([]types.ElevatorRecord, 0, len(recs))
	if err := deepcopy.Copy(&out, recs); err != nil {
		return nil, fmt.Errorf("failed to copy elevator records - %w", err)
	}
	if out == nil {
		out = []types.ElevatorRecord{}
	}
	return out, nil
}
