//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/repository"
	"fleet-scheduler/internal/scheduler"
)

type SnapshotRepoSuite struct {
	suite.Suite
	repo *repository.SnapshotRepo
	ctx  context.Context
}

func (s *SnapshotRepoSuite) SetupTest() {
	s.ctx = context.Background()
	_, err := tcPool.Exec(s.ctx, `TRUNCATE schedule_snapshots`)
	s.Require().NoError(err)
	s.repo = repository.NewSnapshotRepo(tcPool, 3)
}

func snapshotAt(version int64) scheduler.Snapshot {
	zone := time.FixedZone("EET", 2*3600)
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, zone)
	return scheduler.Snapshot{
		Version: version,
		SavedAt: start,
		Shipments: []domain.Shipment{{
			ID:          "s-1",
			OrderRef:    "ORD-1",
			VehicleID:   "v-1",
			ProductType: "diesel",
			Quantity:    decimal.RequireFromString("7500.125"),
			Priority:    domain.PriorityHigh,
			Scheduled:   domain.NewInterval(start, start.Add(2*time.Hour)),
			Status:      domain.ShipmentAssigned,
			Allocations: []domain.CompartmentAllocation{
				{CompartmentID: "c-1", Quantity: decimal.RequireFromString("7500.125")},
			},
		}},
	}
}

func (s *SnapshotRepoSuite) TestLoadLatest_Empty() {
	_, found, err := s.repo.LoadLatest(s.ctx)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *SnapshotRepoSuite) TestSaveAndLoad_RoundTrip() {
	want := snapshotAt(4)
	s.Require().NoError(s.repo.Save(s.ctx, want))

	got, found, err := s.repo.LoadLatest(s.ctx)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().EqualValues(4, got.Version)
	s.Require().Len(got.Shipments, 1)
	s.Require().True(got.Shipments[0].Scheduled.Equal(want.Shipments[0].Scheduled))
	s.Require().True(got.Shipments[0].Quantity.Equal(want.Shipments[0].Quantity))
	s.Require().True(got.Shipments[0].Reconciled())
}

func (s *SnapshotRepoSuite) TestSave_IdempotentAndPruned() {
	for v := int64(1); v <= 6; v++ {
		s.Require().NoError(s.repo.Save(s.ctx, snapshotAt(v)))
	}
	s.Require().NoError(s.repo.Save(s.ctx, snapshotAt(6)))

	var count int
	s.Require().NoError(tcPool.QueryRow(s.ctx, `SELECT count(*) FROM schedule_snapshots`).Scan(&count))
	s.Require().Equal(3, count)

	got, _, err := s.repo.LoadLatest(s.ctx)
	s.Require().NoError(err)
	s.Require().EqualValues(6, got.Version)
}

func TestSnapshotRepoSuite(t *testing.T) {
	require.NotNil(t, tcPool)
	suite.Run(t, new(SnapshotRepoSuite))
}
