package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(movementTicks.WithLabelValues("scan"))
	RecordMovementTicks("scan", 4)
	RecordMovementTicks("scan", 3)
	assert.Equal(t, before+7, testutil.ToFloat64(movementTicks.WithLabelValues("scan")))

	before = testutil.ToFloat64(stuckElevators.WithLabelValues("NonOperationalMove"))
	RecordStuckElevator("NonOperationalMove")
	assert.Equal(t, before+1, testutil.ToFloat64(stuckElevators.WithLabelValues("NonOperationalMove")))

	before = testutil.ToFloat64(saturatedRequests)
	RecordSaturatedRequest()
	assert.Equal(t, before+1, testutil.ToFloat64(saturatedRequests))
}

func TestFloorRequests(t *testing.T) {
	Register()

	RecordFloorRequests("scan", 3)
	want := `
# HELP multivator_floor_requests_total Count of floor requests assigned to a car.
# TYPE multivator_floor_requests_total counter
multivator_floor_requests_total{policy="scan"} 3
`
	if err := testutil.GatherAndCompare(Registry, strings.NewReader(want), "multivator_floor_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestWriteText(t *testing.T) {
	Register()
	RecordDispatchCycle("nearest", 2*time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `multivator_dispatch_cycles_total{policy="nearest"}`)
	assert.Contains(t, out, "# TYPE multivator_dispatch_cycle_duration_seconds histogram")
}
