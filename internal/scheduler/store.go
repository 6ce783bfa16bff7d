package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleet-scheduler/internal/apperr"
	"fleet-scheduler/internal/domain"
)

// DefaultRemovalBuffer widens the ETA window of an order returned to the pool.
const DefaultRemovalBuffer = 4 * time.Hour

// Options configures a Store.
type Options struct {
	// RemovalBuffer is added to a removed shipment's end to form the new ETA end.
	RemovalBuffer time.Duration
	// RequireActiveVehicle rejects bookings on maintenance or offline vehicles.
	RequireActiveVehicle bool
	Now                  func() time.Time
	NewID                func() string
}

// Store is the authoritative in-memory scheduling model.
//
// Writers are serialized by mu; each mutation computes a complete next state
// and swaps it in one assignment, so readers only ever see whole snapshots.
type Store struct {
	mu   sync.RWMutex
	cur  *state
	opts Options
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	if opts.RemovalBuffer <= 0 {
		opts.RemovalBuffer = DefaultRemovalBuffer
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Store{cur: emptyState(), opts: opts}
}

func (s *Store) read() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, apperr.ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperr.ErrInvalid)
}

func (s *Store) inactive(v domain.Vehicle) (Result, bool) {
	if !s.opts.RequireActiveVehicle || v.Active() {
		return Result{}, false
	}
	return Result{
		Reason: ReasonVehicleInactive,
		Error:  fmt.Sprintf("vehicle %s is %s", v.ID, v.Status),
	}, true
}

// Assign books a shipment onto a vehicle for the given interval.
func (s *Store) Assign(shipmentID, vehicleID string, iv domain.Interval) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.cur.shipments[shipmentID]
	if !ok {
		return Result{}, notFound("shipment", shipmentID)
	}
	return s.place(sh, vehicleID, iv)
}

// Move re-books an already placed shipment onto another (or the same) vehicle.
// The allocation is always recomputed against the destination trailer.
func (s *Store) Move(shipmentID, toVehicleID string, iv domain.Interval) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.cur.shipments[shipmentID]
	if !ok {
		return Result{}, notFound("shipment", shipmentID)
	}
	if sh.VehicleID == "" {
		return Result{}, invalid("shipment %s has no vehicle to move from", shipmentID)
	}
	return s.place(sh, toVehicleID, iv)
}

// place runs availability and allocation for sh on vehicleID and commits on
// success. Callers hold mu.
func (s *Store) place(sh domain.Shipment, vehicleID string, iv domain.Interval) (Result, error) {
	cur := s.cur
	v, ok := cur.vehicles[vehicleID]
	if !ok {
		return Result{}, notFound("vehicle", vehicleID)
	}
	if !iv.Valid() {
		return Result{}, invalid("interval start must be before end")
	}
	if res, rejected := s.inactive(v); rejected {
		return res, nil
	}

	av := CheckAvailability(v, cur.vehicleShipments(v.ID), iv, sh.ID)
	if !av.OK() {
		return rejectAvailability(v.ID, av), nil
	}

	alloc := cur.allocateFor(v, sh.ProductType, sh.Quantity)
	if !alloc.Success {
		return rejectAllocation(alloc), nil
	}

	updated := sh.Clone()
	updated.VehicleID = v.ID
	updated.Scheduled = iv
	updated.Allocations = alloc.Allocations
	updated.Status = domain.ShipmentAssigned

	next := cur.next()
	next.shipments[updated.ID] = updated
	s.cur = next

	return Result{
		Success:     true,
		ShipmentID:  updated.ID,
		Allocations: updated.Allocations,
		Version:     next.version,
	}, nil
}

// Resize changes the interval of a shipment on its current vehicle. The
// allocation is left untouched. Resizing to the current interval always
// succeeds without a new version.
func (s *Store) Resize(shipmentID string, iv domain.Interval) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	sh, ok := cur.shipments[shipmentID]
	if !ok {
		return Result{}, notFound("shipment", shipmentID)
	}
	if !iv.Valid() {
		return Result{}, invalid("interval start must be before end")
	}
	if iv.Equal(sh.Scheduled) {
		return Result{
			Success:     true,
			ShipmentID:  sh.ID,
			Allocations: sh.Clone().Allocations,
			Version:     cur.version,
		}, nil
	}

	v, ok := cur.vehicles[sh.VehicleID]
	if !ok {
		return Result{}, notFound("vehicle", sh.VehicleID)
	}

	av := CheckAvailability(v, cur.vehicleShipments(v.ID), iv, sh.ID)
	if !av.OK() {
		return rejectAvailability(v.ID, av), nil
	}

	updated := sh.Clone()
	updated.Scheduled = iv

	next := cur.next()
	next.shipments[updated.ID] = updated
	s.cur = next

	return Result{
		Success:     true,
		ShipmentID:  updated.ID,
		Allocations: updated.Allocations,
		Version:     next.version,
	}, nil
}

// CreateFromUnassigned converts an unassigned order into a shipment.
//
// The interval must lie inside the order's ETA window, otherwise nothing
// changes. Past that check the shipment is always created and the order
// consumed; an availability or allocation failure is reported as a partial
// result carrying the new shipment ID.
func (s *Store) CreateFromUnassigned(orderID, vehicleID string, iv domain.Interval) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	o, ok := cur.orders[orderID]
	if !ok {
		return Result{}, notFound("order", orderID)
	}
	v, ok := cur.vehicles[vehicleID]
	if !ok {
		return Result{}, notFound("vehicle", vehicleID)
	}
	if !iv.Valid() {
		return Result{}, invalid("interval start must be before end")
	}
	if !iv.Within(o.ETA) {
		return Result{
			Reason: ReasonETAWindow,
			Error: fmt.Sprintf("interval %s..%s is outside the ETA window %s..%s of order %s",
				formatTime(iv.Start), formatTime(iv.End),
				formatTime(o.ETA.Start), formatTime(o.ETA.End), o.OrderRef),
		}, nil
	}
	if res, rejected := s.inactive(v); rejected {
		return res, nil
	}

	av := CheckAvailability(v, cur.vehicleShipments(v.ID), iv, "")
	alloc := cur.allocateFor(v, o.ProductType, o.Quantity)

	sh := domain.Shipment{
		ID:              s.opts.NewID(),
		OrderRef:        o.OrderRef,
		VehicleID:       v.ID,
		ProductType:     o.ProductType,
		Quantity:        o.Quantity,
		Priority:        o.Priority,
		Scheduled:       iv,
		Allocations:     alloc.Allocations,
		Status:          domain.ShipmentAssigned,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
	}

	next := cur.next()
	delete(next.orders, o.ID)
	next.shipments[sh.ID] = sh
	s.cur = next

	var res Result
	switch {
	case !av.OK():
		res = rejectAvailability(v.ID, av)
		res.AllocationErrors = alloc.Errors
	case !alloc.Success:
		res = rejectAllocation(alloc)
	default:
		res = Result{Success: true}
	}
	res.Partial = !res.Success
	res.ShipmentID = sh.ID
	res.Allocations = sh.Clone().Allocations
	res.Version = next.version
	return res, nil
}

// Remove deletes a shipment and returns its order to the unassigned pool with
// an ETA window of [start, end+RemovalBuffer).
func (s *Store) Remove(shipmentID string) (domain.UnassignedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	sh, ok := cur.shipments[shipmentID]
	if !ok {
		return domain.UnassignedOrder{}, notFound("shipment", shipmentID)
	}

	o := domain.UnassignedOrder{
		ID:              s.opts.NewID(),
		OrderRef:        sh.OrderRef,
		ProductType:     sh.ProductType,
		Quantity:        sh.Quantity,
		Priority:        sh.Priority,
		ETA:             domain.NewInterval(sh.Scheduled.Start, sh.Scheduled.End.Add(s.opts.RemovalBuffer)),
		CustomerName:    sh.CustomerName,
		DeliveryAddress: sh.DeliveryAddress,
		CreatedAt:       s.opts.Now(),
	}

	next := cur.next()
	delete(next.shipments, sh.ID)
	next.orders[o.ID] = o
	s.cur = next

	return o, nil
}

// AutoAllocate recomputes the allocation of a shipment against the trailer of
// vehicleID, or of the shipment's own vehicle when vehicleID is empty. The
// result is committed only when it succeeds and vehicleID is the shipment's
// current vehicle; otherwise it is a preview.
func (s *Store) AutoAllocate(shipmentID, vehicleID string) (AllocationOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	sh, ok := cur.shipments[shipmentID]
	if !ok {
		return AllocationOutcome{}, notFound("shipment", shipmentID)
	}
	if vehicleID == "" {
		vehicleID = sh.VehicleID
	}
	v, ok := cur.vehicles[vehicleID]
	if !ok {
		return AllocationOutcome{}, notFound("vehicle", vehicleID)
	}

	alloc := cur.allocateFor(v, sh.ProductType, sh.Quantity)
	out := AllocationOutcome{Allocation: alloc, VehicleID: v.ID, Version: cur.version}
	if !alloc.Success || v.ID != sh.VehicleID {
		return out, nil
	}

	updated := sh.Clone()
	updated.Allocations = alloc.Allocations

	next := cur.next()
	next.shipments[updated.ID] = updated
	s.cur = next

	out.Committed = true
	out.Version = next.version
	return out, nil
}

// AddOrder puts a new order into the unassigned pool. An order ref may be
// represented by at most one order or shipment at a time.
func (s *Store) AddOrder(o domain.UnassignedOrder) (domain.UnassignedOrder, error) {
	if o.ID == "" {
		o.ID = s.opts.NewID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.opts.Now()
	}
	if err := o.Validate(); err != nil {
		return domain.UnassignedOrder{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	if _, dup := cur.orders[o.ID]; dup {
		return domain.UnassignedOrder{}, fmt.Errorf("order id %q: %w", o.ID, apperr.ErrConflict)
	}
	if cur.orderRefTaken(o.OrderRef) {
		return domain.UnassignedOrder{}, fmt.Errorf("order ref %q: %w", o.OrderRef, apperr.ErrConflict)
	}

	next := cur.next()
	next.orders[o.ID] = o
	s.cur = next
	return o, nil
}

// WithdrawOrder drops a still unassigned order by its order ref.
func (s *Store) WithdrawOrder(orderRef string) (domain.UnassignedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	for _, sh := range cur.shipments {
		if sh.OrderRef == orderRef {
			return domain.UnassignedOrder{}, fmt.Errorf("order ref %q is scheduled as shipment %s: %w",
				orderRef, sh.ID, apperr.ErrConflict)
		}
	}
	for id, o := range cur.orders {
		if o.OrderRef != orderRef {
			continue
		}
		next := cur.next()
		delete(next.orders, id)
		s.cur = next
		return o, nil
	}
	return domain.UnassignedOrder{}, notFound("order ref", orderRef)
}

// UpsertVehicle registers or replaces a vehicle.
func (s *Store) UpsertVehicle(v domain.Vehicle) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.next()
	next.vehicles[v.ID] = v
	s.cur = next
	return nil
}

// UpsertTrailer registers or replaces a catalog trailer.
func (s *Store) UpsertTrailer(t domain.Trailer) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.next()
	next.trailers[t.ID] = t.Clone()
	s.cur = next
	return nil
}
