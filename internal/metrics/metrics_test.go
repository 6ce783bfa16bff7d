package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/scheduler"
)

func TestScheduling_Counters(t *testing.T) {
	t.Parallel()

	m := NewScheduling()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.Operation("assign", "rejected", scheduler.ReasonOverlap)
	m.Operation("assign", "rejected", scheduler.ReasonOverlap)
	m.Operation("assign", "success", "")
	m.SnapshotSaved(7, nil)
	m.SnapshotSaved(8, errors.New("down"))
	m.Reallocated(3)

	require.InDelta(t, 2, testutil.ToFloat64(m.operations.WithLabelValues("assign", "rejected", "overlap")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("assign", "success", "")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.snapshotSaves.WithLabelValues("error")), 0)
	require.InDelta(t, 7, testutil.ToFloat64(m.lastSaved), 0)
	require.InDelta(t, 3, testutil.ToFloat64(m.reallocated), 0)

	require.Error(t, m.Register(reg), "double registration must fail")
}

func TestCounters_Names(t *testing.T) {
	t.Parallel()

	require.Contains(t, NewRateLimitExceededTotal().Desc().String(), "rate_limit_exceeded_total")
	require.Contains(t, NewSnapshotRetriesTotal().Desc().String(), "snapshot_store_retries_total")
}
