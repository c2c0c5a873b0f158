package engine

import (
	"golang.org/x/sync/errgroup"

	"multivator/src/dispatcher"
	"multivator/src/elev"
	"multivator/src/executor"
	"multivator/src/trace"
	"multivator/src/types"
)

// outcome is what simulating one car produced. acc is nil for cars that
// were not selected.
type outcome struct {
	acc *trace.Accumulator
	err error
}

// simulate runs every selected car through its stops, indexed by fleet
// ordinal. Cars share no state once assignment is done, so with Parallel
// set each car gets its own goroutine. Only an Internal error fails the
// whole cycle.
func (en *Engine) simulate(fleet *elev.Fleet, assignment dispatcher.Assignment) ([]outcome, error) {
	outcomes := make([]outcome, fleet.Len())
	run := func(ordinal int) error {
		e := fleet.At(ordinal)
		if !assignment.Selected(e.ID) {
			return nil
		}
		acc := trace.NewAccumulator()
		err := executor.Simulate(e, en.cfg.Policy, en.guard, acc)
		if types.CanonicalCode(err) == types.Internal {
			return err
		}
		outcomes[ordinal] = outcome{acc: acc, err: err}
		return nil
	}

	if !en.cfg.Parallel {
		for ordinal := range fleet.Len() {
			if err := run(ordinal); err != nil {
				return nil, err
			}
		}
		return outcomes, nil
	}

	var g errgroup.Group
	for ordinal := range fleet.Len() {
		g.Go(func() error {
			return run(ordinal)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
