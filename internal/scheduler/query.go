package scheduler

import (
	"errors"
	"fmt"
	"slices"

	"fleet-scheduler/internal/apperr"
	"fleet-scheduler/internal/domain"
)

// Stats summarizes the current schedule.
type Stats struct {
	Version               int64                         `json:"version"`
	Vehicles              int                           `json:"vehicles"`
	VehiclesByStatus      map[domain.VehicleStatus]int  `json:"vehicles_by_status"`
	Shipments             int                           `json:"shipments"`
	ShipmentsByStatus     map[domain.ShipmentStatus]int `json:"shipments_by_status"`
	Unassigned            int                           `json:"unassigned"`
	UnassignedByPriority  map[domain.Priority]int       `json:"unassigned_by_priority"`
	UnreconciledShipments []string                      `json:"unreconciled_shipments"`
	BookedHours           map[string]float64            `json:"booked_hours"`
}

// Version returns the current state version.
func (s *Store) Version() int64 {
	return s.read().version
}

// Vehicles lists vehicles ordered by ID.
func (s *Store) Vehicles() []domain.Vehicle {
	return s.read().sortedVehicles()
}

// Trailers lists catalog trailers ordered by ID.
func (s *Store) Trailers() []domain.Trailer {
	return s.read().sortedTrailers()
}

// Shipments lists shipments ordered by scheduled start.
func (s *Store) Shipments() []domain.Shipment {
	return s.read().sortedShipments()
}

// UnassignedOrders lists pending orders, most urgent first.
func (s *Store) UnassignedOrders() []domain.UnassignedOrder {
	return s.read().sortedOrders()
}

// Shipment returns a shipment by ID.
func (s *Store) Shipment(id string) (domain.Shipment, error) {
	sh, ok := s.read().shipments[id]
	if !ok {
		return domain.Shipment{}, notFound("shipment", id)
	}
	return sh.Clone(), nil
}

// Order returns an unassigned order by ID.
func (s *Store) Order(id string) (domain.UnassignedOrder, error) {
	o, ok := s.read().orders[id]
	if !ok {
		return domain.UnassignedOrder{}, notFound("order", id)
	}
	return o, nil
}

// Unreconciled lists shipments whose allocations do not sum to their quantity.
func (s *Store) Unreconciled() []domain.Shipment {
	var out []domain.Shipment
	for _, sh := range s.read().sortedShipments() {
		if !sh.Reconciled() {
			out = append(out, sh)
		}
	}
	return out
}

// Stats computes a summary of the current state.
func (s *Store) Stats() Stats {
	cur := s.read()
	st := Stats{
		Version:               cur.version,
		Vehicles:              len(cur.vehicles),
		VehiclesByStatus:      map[domain.VehicleStatus]int{},
		Shipments:             len(cur.shipments),
		ShipmentsByStatus:     map[domain.ShipmentStatus]int{},
		Unassigned:            len(cur.orders),
		UnassignedByPriority:  map[domain.Priority]int{},
		UnreconciledShipments: []string{},
		BookedHours:           map[string]float64{},
	}
	for _, v := range cur.vehicles {
		st.VehiclesByStatus[v.Status]++
		st.BookedHours[v.ID] = 0
	}
	for _, sh := range cur.sortedShipments() {
		st.ShipmentsByStatus[sh.Status]++
		if !sh.Reconciled() {
			st.UnreconciledShipments = append(st.UnreconciledShipments, sh.ID)
		}
		if _, ok := cur.vehicles[sh.VehicleID]; ok {
			st.BookedHours[sh.VehicleID] += sh.Scheduled.Duration().Hours()
		}
	}
	for _, o := range cur.orders {
		st.UnassignedByPriority[o.Priority]++
	}
	return st
}

// Snapshot captures the current state. Collections are sorted, so equal
// states produce equal snapshots.
func (s *Store) Snapshot() Snapshot {
	cur := s.read()
	return Snapshot{
		Version:          cur.version,
		SavedAt:          s.opts.Now(),
		Vehicles:         cur.sortedVehicles(),
		Trailers:         cur.sortedTrailers(),
		Shipments:        cur.sortedShipments(),
		UnassignedOrders: cur.sortedOrders(),
	}
}

// Restore replaces the whole state with the snapshot contents. The snapshot
// is validated first; on error the current state is kept.
func (s *Store) Restore(snap Snapshot) error {
	next, err := stateFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = next
	return nil
}

func stateFromSnapshot(snap Snapshot) (*state, error) {
	if snap.Version < 0 {
		return nil, fmt.Errorf("negative snapshot version %d", snap.Version)
	}
	st := emptyState()
	st.version = snap.Version

	var errs []error
	for _, v := range snap.Vehicles {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := st.vehicles[v.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate vehicle %s", v.ID))
			continue
		}
		st.vehicles[v.ID] = v
	}
	for _, t := range snap.Trailers {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := st.trailers[t.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate trailer %s", t.ID))
			continue
		}
		st.trailers[t.ID] = t.Clone()
	}
	refs := make(map[string]struct{}, len(snap.Shipments)+len(snap.UnassignedOrders))
	for _, sh := range snap.Shipments {
		if err := validateShipment(sh); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := st.shipments[sh.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate shipment %s", sh.ID))
			continue
		}
		if _, ok := st.vehicles[sh.VehicleID]; !ok {
			errs = append(errs, fmt.Errorf("shipment %s: unknown vehicle %s", sh.ID, sh.VehicleID))
			continue
		}
		if _, dup := refs[sh.OrderRef]; dup {
			errs = append(errs, fmt.Errorf("order ref %s appears more than once", sh.OrderRef))
			continue
		}
		refs[sh.OrderRef] = struct{}{}
		st.shipments[sh.ID] = sh.Clone()
	}
	for _, o := range snap.UnassignedOrders {
		if err := o.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := st.orders[o.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate order %s", o.ID))
			continue
		}
		if _, dup := refs[o.OrderRef]; dup {
			errs = append(errs, fmt.Errorf("order ref %s appears more than once", o.OrderRef))
			continue
		}
		refs[o.OrderRef] = struct{}{}
		st.orders[o.ID] = o
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return st, nil
}

func validateShipment(sh domain.Shipment) error {
	switch {
	case sh.ID == "":
		return errors.New("shipment id is empty")
	case sh.OrderRef == "":
		return fmt.Errorf("shipment %s: order ref is empty", sh.ID)
	case sh.VehicleID == "":
		return fmt.Errorf("shipment %s: vehicle id is empty", sh.ID)
	case !sh.Scheduled.Valid():
		return fmt.Errorf("shipment %s: scheduled start must be before end", sh.ID)
	case !sh.Quantity.IsPositive():
		return fmt.Errorf("shipment %s: quantity must be positive", sh.ID)
	case !sh.Status.Valid():
		return fmt.Errorf("shipment %s: unknown status %q", sh.ID, sh.Status)
	}
	return nil
}

// VehicleShipments lists the shipments booked on a vehicle, ordered by start.
func (s *Store) VehicleShipments(vehicleID string) []domain.Shipment {
	out := s.read().vehicleShipments(vehicleID)
	for i := range out {
		out[i] = out[i].Clone()
	}
	slices.SortFunc(out, func(a, b domain.Shipment) int {
		return a.Scheduled.Start.Compare(b.Scheduled.Start)
	})
	return out
}
