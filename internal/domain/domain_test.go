package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/domain"
)

func TestTrailer_Validate(t *testing.T) {
	t.Parallel()

	comp := func(id string, capacity int64) domain.Compartment {
		return domain.Compartment{ID: id, Capacity: decimal.NewFromInt(capacity), ProductType: "diesel"}
	}

	tests := []struct {
		name      string
		trailer   domain.Trailer
		errAssert require.ErrorAssertionFunc
	}{
		{
			name:      "valid",
			trailer:   domain.Trailer{ID: "t1", Compartments: []domain.Compartment{comp("c1", 100), comp("c2", 200)}},
			errAssert: require.NoError,
		},
		{
			name:      "empty id",
			trailer:   domain.Trailer{Compartments: []domain.Compartment{comp("c1", 100)}},
			errAssert: require.Error,
		},
		{
			name:      "no compartments",
			trailer:   domain.Trailer{ID: "t1"},
			errAssert: require.Error,
		},
		{
			name:      "duplicate compartment",
			trailer:   domain.Trailer{ID: "t1", Compartments: []domain.Compartment{comp("c1", 100), comp("c1", 200)}},
			errAssert: require.Error,
		},
		{
			name:      "zero capacity",
			trailer:   domain.Trailer{ID: "t1", Compartments: []domain.Compartment{comp("c1", 0)}},
			errAssert: require.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.errAssert(t, tt.trailer.Validate())
		})
	}
}

func TestTrailer_TotalCapacity(t *testing.T) {
	t.Parallel()

	tr := domain.Trailer{ID: "t1", Compartments: []domain.Compartment{
		{ID: "a", Capacity: decimal.RequireFromString("8000.5")},
		{ID: "b", Capacity: decimal.NewFromInt(6000)},
	}}

	require.True(t, decimal.RequireFromString("14000.5").Equal(tr.TotalCapacity()))

	c, ok := tr.Compartment("b")
	require.True(t, ok)
	require.Equal(t, "b", c.ID)

	_, ok = tr.Compartment("zzz")
	require.False(t, ok)
}

func TestShipment_Reconciled(t *testing.T) {
	t.Parallel()

	s := domain.Shipment{
		Quantity: decimal.NewFromInt(7500),
		Allocations: []domain.CompartmentAllocation{
			{CompartmentID: "a", Quantity: decimal.NewFromInt(5000)},
			{CompartmentID: "b", Quantity: decimal.NewFromInt(2500)},
		},
	}
	require.True(t, s.Reconciled())

	s.Allocations = s.Allocations[:1]
	require.False(t, s.Reconciled())
}

func TestShipment_CloneDoesNotShareAllocations(t *testing.T) {
	t.Parallel()

	s := domain.Shipment{Allocations: []domain.CompartmentAllocation{{CompartmentID: "a"}}}
	c := s.Clone()
	c.Allocations[0].CompartmentID = "b"

	require.Equal(t, "a", s.Allocations[0].CompartmentID)
}

func TestStatuses_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, domain.VehicleMaintenance.Valid())
	require.False(t, domain.VehicleStatus("parked").Valid())
	require.True(t, domain.ShipmentInTransit.Valid())
	require.False(t, domain.ShipmentStatus("lost").Valid())
	require.True(t, domain.PriorityLow.Valid())
	require.False(t, domain.Priority("urgent").Valid())
	require.Less(t, domain.PriorityHigh.Rank(), domain.PriorityLow.Rank())
}
