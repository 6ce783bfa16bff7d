//go:generate mockgen -source=contracts.go -destination=scheduling_mocks_test.go -package=scheduling_test

package scheduling

import (
	"context"

	"fleet-scheduler/internal/scheduler"
)

// SnapshotStore persists whole-state snapshots. LoadLatest reports false when
// nothing has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, snap scheduler.Snapshot) error
	LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error)
}

// Metrics receives operation outcomes.
type Metrics interface {
	Operation(op, outcome string, reason scheduler.Reason)
	SnapshotSaved(version int64, err error)
	Reallocated(committed int)
}

type nopMetrics struct{}

func (nopMetrics) Operation(string, string, scheduler.Reason) {}
func (nopMetrics) SnapshotSaved(int64, error)                 {}
func (nopMetrics) Reallocated(int)                            {}
