package scheduler

import (
	"cmp"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"fleet-scheduler/internal/domain"
)

// state is an immutable snapshot of the store. Mutations build a new state
// with next() and replace maps entries with fresh values; slices inside stored
// values are never modified in place.
type state struct {
	version   int64
	vehicles  map[string]domain.Vehicle
	trailers  map[string]domain.Trailer
	shipments map[string]domain.Shipment
	orders    map[string]domain.UnassignedOrder
}

func emptyState() *state {
	return &state{
		vehicles:  map[string]domain.Vehicle{},
		trailers:  map[string]domain.Trailer{},
		shipments: map[string]domain.Shipment{},
		orders:    map[string]domain.UnassignedOrder{},
	}
}

func (s *state) next() *state {
	return &state{
		version:   s.version + 1,
		vehicles:  maps.Clone(s.vehicles),
		trailers:  maps.Clone(s.trailers),
		shipments: maps.Clone(s.shipments),
		orders:    maps.Clone(s.orders),
	}
}

func (s *state) vehicleShipments(vehicleID string) []domain.Shipment {
	var out []domain.Shipment
	for _, sh := range s.shipments {
		if sh.VehicleID == vehicleID {
			out = append(out, sh)
		}
	}
	return out
}

// trailerFor resolves the vehicle's trailer. A nil trailer comes with the
// reason it could not be resolved.
func (s *state) trailerFor(v domain.Vehicle) (*domain.Trailer, string) {
	if !v.HasTrailer() {
		return nil, "vehicle " + v.ID + " has no trailer attached"
	}
	t, ok := s.trailers[v.TrailerID]
	if !ok {
		return nil, "trailer " + v.TrailerID + " of vehicle " + v.ID + " is not in the catalog"
	}
	return &t, ""
}

func (s *state) allocateFor(v domain.Vehicle, product domain.ProductType, qty decimal.Decimal) Allocation {
	trailer, reason := s.trailerFor(v)
	if trailer == nil {
		return Allocation{Errors: []string{reason}, Remaining: qty}
	}
	return Allocate(product, qty, trailer)
}

func (s *state) orderRefTaken(ref string) bool {
	for _, o := range s.orders {
		if o.OrderRef == ref {
			return true
		}
	}
	for _, sh := range s.shipments {
		if sh.OrderRef == ref {
			return true
		}
	}
	return false
}

func (s *state) sortedVehicles() []domain.Vehicle {
	out := slices.Collect(maps.Values(s.vehicles))
	slices.SortFunc(out, func(a, b domain.Vehicle) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *state) sortedTrailers() []domain.Trailer {
	out := make([]domain.Trailer, 0, len(s.trailers))
	for _, t := range s.trailers {
		out = append(out, t.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Trailer) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *state) sortedShipments() []domain.Shipment {
	out := make([]domain.Shipment, 0, len(s.shipments))
	for _, sh := range s.shipments {
		out = append(out, sh.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Shipment) int {
		if c := a.Scheduled.Start.Compare(b.Scheduled.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (s *state) sortedOrders() []domain.UnassignedOrder {
	out := slices.Collect(maps.Values(s.orders))
	slices.SortFunc(out, func(a, b domain.UnassignedOrder) int {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		if c := a.ETA.Start.Compare(b.ETA.Start); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
