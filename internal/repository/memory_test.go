package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

func sampleSnapshot(version int64) scheduler.Snapshot {
	start := time.Date(2025, 3, 10, 6, 0, 0, 0, time.FixedZone("CET", 3600))
	return scheduler.Snapshot{
		Version: version,
		SavedAt: start,
		Vehicles: []domain.Vehicle{{
			ID:           "v-1",
			Status:       domain.VehicleActive,
			Availability: domain.NewInterval(start, start.Add(12*time.Hour)),
		}},
	}
}

func TestMemoryStore_KeepsNewest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemoryStore()

	_, found, err := m.LoadLatest(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, m.Save(ctx, sampleSnapshot(3)))
	require.NoError(t, m.Save(ctx, sampleSnapshot(2)))

	snap, found, err := m.LoadLatest(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 3, snap.Version)
	require.True(t, snap.Vehicles[0].Availability.Start.Equal(sampleSnapshot(3).Vehicles[0].Availability.Start))
	require.Equal(t, 2, m.Saves())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryStore()
	require.ErrorIs(t, m.Save(ctx, sampleSnapshot(1)), context.Canceled)
	_, _, err := m.LoadLatest(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
