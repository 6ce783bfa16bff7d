// Package metrics defines the Prometheus collectors of the scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"fleet-scheduler/internal/scheduler"
)

// NewRateLimitExceededTotal returns a counter of HTTP requests rejected by the rate limiter.
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewSnapshotRetriesTotal returns a counter of retried snapshot store calls.
func NewSnapshotRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_store_retries_total",
		Help: "Total number of retry attempts performed against the snapshot store",
	})
}

// Scheduling records scheduling outcomes.
type Scheduling struct {
	operations    *prometheus.CounterVec
	snapshotSaves *prometheus.CounterVec
	lastSaved     prometheus.Gauge
	reallocated   prometheus.Counter
}

// NewScheduling creates the collectors. Register them with Register.
func NewScheduling() *Scheduling {
	return &Scheduling{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_operations_total",
			Help: "Scheduling operations by name, outcome and rejection reason",
		}, []string{"operation", "outcome", "reason"}),
		snapshotSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_snapshot_saves_total",
			Help: "Snapshot save attempts by result",
		}, []string{"result"}),
		lastSaved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_snapshot_version",
			Help: "Version of the last successfully saved snapshot",
		}),
		reallocated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_reallocated_shipments_total",
			Help: "Unreconciled shipments fixed by the reallocation sweep",
		}),
	}
}

// Register adds all collectors to reg.
func (s *Scheduling) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.operations, s.snapshotSaves, s.lastSaved, s.reallocated} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Operation counts one finished operation.
func (s *Scheduling) Operation(op, outcome string, reason scheduler.Reason) {
	s.operations.WithLabelValues(op, outcome, string(reason)).Inc()
}

// SnapshotSaved counts a save attempt.
func (s *Scheduling) SnapshotSaved(version int64, err error) {
	if err != nil {
		s.snapshotSaves.WithLabelValues("error").Inc()
		return
	}
	s.snapshotSaves.WithLabelValues("ok").Inc()
	s.lastSaved.Set(float64(version))
}

// Reallocated counts shipments fixed by a sweep.
func (s *Scheduling) Reallocated(committed int) {
	s.reallocated.Add(float64(committed))
}
