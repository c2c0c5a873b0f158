// Package metrics exposes Prometheus counters for dispatch cycles.
package metrics

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const subsystem = "multivator"

// Registry holds every metric of this package.
var Registry = prometheus.NewRegistry()

var (
	dispatchCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "dispatch_cycles_total",
			Help:      "Count of dispatch cycles run, by servicing policy.",
		},
		[]string{"policy"},
	)
	floorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "floor_requests_total",
			Help:      "Count of floor requests assigned to a car.",
		},
		[]string{"policy"},
	)
	saturatedRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "saturated_requests_total",
			Help:      "Count of requests assigned after every car was already selected.",
		},
	)
	movementTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "movement_ticks_total",
			Help:      "Count of one-floor movements simulated.",
		},
		[]string{"policy"},
	)
	stuckElevators = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "stuck_elevators_total",
			Help:      "Count of cars whose simulation ended before all stops were served, by error code.",
		},
		[]string{"code"},
	)
	cycleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "dispatch_cycle_duration_seconds",
			Help:      "Wall time of a dispatch cycle in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"policy"},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(dispatchCycles)
		Registry.MustRegister(floorRequests)
		Registry.MustRegister(saturatedRequests)
		Registry.MustRegister(movementTicks)
		Registry.MustRegister(stuckElevators)
		Registry.MustRegister(cycleDuration)
	})
}

// RecordDispatchCycle records a finished cycle and how long it took.
func RecordDispatchCycle(policy string, elapsed time.Duration) {
	dispatchCycles.WithLabelValues(policy).Inc()
	cycleDuration.WithLabelValues(policy).Observe(elapsed.Seconds())
}

// RecordFloorRequests records the number of requests assigned in a cycle.
func RecordFloorRequests(policy string, count int) {
	floorRequests.WithLabelValues(policy).Add(float64(count))
}

func RecordSaturatedRequest() {
	saturatedRequests.Inc()
}

// RecordMovementTicks records the movement ticks of one car.
func RecordMovementTicks(policy string, ticks int) {
	movementTicks.WithLabelValues(policy).Add(float64(ticks))
}

// RecordStuckElevator records a car that stopped with the given error code.
func RecordStuckElevator(code string) {
	stuckElevators.WithLabelValues(code).Inc()
}

// WriteText writes every registered metric in the Prometheus text format.
func WriteText(w io.Writer) error {
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics - %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s - %w", mf.GetName(), err)
		}
	}
	return nil
}
