package scheduler_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func span(fromH, toH int) domain.Interval {
	return domain.NewInterval(at(fromH, 0), at(toH, 0))
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func compartment(id string, product domain.ProductType, capacity string, mandatory, partial, mustUse bool) domain.Compartment {
	return domain.Compartment{
		ID:              id,
		Name:            id,
		Capacity:        qty(capacity),
		ProductType:     product,
		MandatoryToLoad: mandatory,
		PartialAllowed:  partial,
		MustUse:         mustUse,
	}
}

func dieselPetrolTrailer() domain.Trailer {
	return domain.Trailer{
		ID:   "trl-1",
		Name: "Two compartment tanker",
		Compartments: []domain.Compartment{
			compartment("comp-diesel", "diesel", "8000", true, true, false),
			compartment("comp-petrol", "petrol", "6000", false, true, false),
		},
	}
}

func vehicle(id, trailerID string) domain.Vehicle {
	return domain.Vehicle{
		ID:           id,
		Name:         "Truck " + id,
		Status:       domain.VehicleActive,
		TrailerID:    trailerID,
		Availability: span(6, 18),
		DriverName:   "Driver " + id,
	}
}

func order(id, ref string, product domain.ProductType, quantity string, eta domain.Interval) domain.UnassignedOrder {
	return domain.UnassignedOrder{
		ID:              id,
		OrderRef:        ref,
		ProductType:     product,
		Quantity:        qty(quantity),
		Priority:        domain.PriorityMedium,
		ETA:             eta,
		CustomerName:    "Station " + ref,
		DeliveryAddress: "1 Depot Road",
		CreatedAt:       day,
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// newStore returns a store seeded with vehicle v-1 carrying the diesel/petrol
// trailer and an empty vehicle v-2 with the same trailer.
func newStore(t *testing.T, opts scheduler.Options) *scheduler.Store {
	t.Helper()

	if opts.Now == nil {
		opts.Now = func() time.Time { return at(5, 0) }
	}
	if opts.NewID == nil {
		opts.NewID = sequentialIDs("gen")
	}
	s := scheduler.NewStore(opts)
	require.NoError(t, s.UpsertTrailer(dieselPetrolTrailer()))
	require.NoError(t, s.UpsertVehicle(vehicle("v-1", "trl-1")))
	require.NoError(t, s.UpsertVehicle(vehicle("v-2", "trl-1")))
	return s
}

// schedule creates an assigned shipment for a fresh order and returns its ID.
func schedule(t *testing.T, s *scheduler.Store, ref string, product domain.ProductType, quantity, vehicleID string, iv domain.Interval) string {
	t.Helper()

	o, err := s.AddOrder(order("", ref, product, quantity, span(0, 23)))
	require.NoError(t, err)
	res, err := s.CreateFromUnassigned(o.ID, vehicleID, iv)
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)
	return res.ShipmentID
}

func sum(allocs []domain.CompartmentAllocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Quantity)
	}
	return total
}
