// Package scheduling exposes the scheduling store as a service: input
// normalization, event logging, metrics and snapshot persistence after every
// committed change.
package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleet-scheduler/internal/apperr"
	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/scheduler"
)

// Operation names used in logs and metrics.
const (
	OpAssign       = "assign"
	OpMove         = "move"
	OpResize       = "resize"
	OpCreate       = "create_from_unassigned"
	OpRemove       = "remove"
	OpAutoAllocate = "auto_allocate"
	OpAddOrder     = "add_order"
	OpWithdraw     = "withdraw_order"
	OpUpsert       = "upsert"
)

// Outcomes
const (
	OutcomeSuccess  = "success"
	OutcomePartial  = "partial"
	OutcomeRejected = "rejected"
	OutcomePreview  = "preview"
	OutcomeError    = "error"
)

// Service coordinates the store with persistence and observability.
type Service struct {
	store            *scheduler.Store
	snapshots        SnapshotStore
	metrics          Metrics
	logger           logx.Logger
	operationTimeout time.Duration
	seedFile         string

	saveMu       sync.Mutex
	savedVersion int64
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSeedFile sets the file applied by Restore when no snapshot exists.
func WithSeedFile(path string) Option {
	return func(s *Service) { s.seedFile = path }
}

// NewService creates a Service. A non-positive timeout defaults to 3s.
func NewService(store *scheduler.Store, snapshots SnapshotStore, timeout time.Duration, logger logx.Logger, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Service{
		store:            store,
		snapshots:        snapshots,
		metrics:          nopMetrics{},
		logger:           logger.With(logx.String("component", "scheduling")),
		operationTimeout: timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func normalizeID(kind, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%s id is empty: %w", kind, apperr.ErrInvalid)
	}
	return id, nil
}

// Vehicles lists the fleet.
func (s *Service) Vehicles(context.Context) []domain.Vehicle { return s.store.Vehicles() }

// Trailers lists the trailer catalog.
func (s *Service) Trailers(context.Context) []domain.Trailer { return s.store.Trailers() }

// Shipments lists scheduled shipments.
func (s *Service) Shipments(context.Context) []domain.Shipment { return s.store.Shipments() }

// UnassignedOrders lists pending orders, most urgent first.
func (s *Service) UnassignedOrders(context.Context) []domain.UnassignedOrder {
	return s.store.UnassignedOrders()
}

// Stats summarizes the schedule.
func (s *Service) Stats(context.Context) scheduler.Stats { return s.store.Stats() }

// UpsertVehicle registers or replaces a vehicle.
func (s *Service) UpsertVehicle(ctx context.Context, v domain.Vehicle) error {
	id, err := normalizeID("vehicle", v.ID)
	if err != nil {
		return err
	}
	v.ID = id
	if err := s.store.UpsertVehicle(v); err != nil {
		s.metrics.Operation(OpUpsert, OutcomeError, "")
		return err
	}
	s.logger.Info("vehicle upserted",
		logx.String("event", "vehicle_upserted"),
		logx.String("vehicle_id", v.ID),
		logx.String("status", string(v.Status)),
		logx.String("trailer_id", v.TrailerID),
	)
	s.metrics.Operation(OpUpsert, OutcomeSuccess, "")
	s.persist(ctx)
	return nil
}

// UpsertTrailer registers or replaces a trailer.
func (s *Service) UpsertTrailer(ctx context.Context, t domain.Trailer) error {
	id, err := normalizeID("trailer", t.ID)
	if err != nil {
		return err
	}
	t.ID = id
	if err := s.store.UpsertTrailer(t); err != nil {
		s.metrics.Operation(OpUpsert, OutcomeError, "")
		return err
	}
	s.logger.Info("trailer upserted",
		logx.String("event", "trailer_upserted"),
		logx.String("trailer_id", t.ID),
		logx.Int("compartments", len(t.Compartments)),
	)
	s.metrics.Operation(OpUpsert, OutcomeSuccess, "")
	s.persist(ctx)
	return nil
}

// AddOrder puts an order into the unassigned pool.
func (s *Service) AddOrder(ctx context.Context, o domain.UnassignedOrder) (domain.UnassignedOrder, error) {
	o.ID = strings.TrimSpace(o.ID)
	ref, err := normalizeID("order ref", o.OrderRef)
	if err != nil {
		return domain.UnassignedOrder{}, err
	}
	o.OrderRef = ref

	added, err := s.store.AddOrder(o)
	if err != nil {
		s.metrics.Operation(OpAddOrder, OutcomeError, "")
		return domain.UnassignedOrder{}, err
	}
	s.logger.Info("order added",
		logx.String("event", "order_added"),
		logx.String("order_id", added.ID),
		logx.String("order_ref", added.OrderRef),
		logx.String("product", string(added.ProductType)),
		logx.String("quantity", added.Quantity.String()),
	)
	s.metrics.Operation(OpAddOrder, OutcomeSuccess, "")
	s.persist(ctx)
	return added, nil
}

// WithdrawOrder drops an unassigned order by its external reference.
func (s *Service) WithdrawOrder(ctx context.Context, orderRef string) (domain.UnassignedOrder, error) {
	ref, err := normalizeID("order ref", orderRef)
	if err != nil {
		return domain.UnassignedOrder{}, err
	}
	o, err := s.store.WithdrawOrder(ref)
	if err != nil {
		s.metrics.Operation(OpWithdraw, OutcomeError, "")
		return domain.UnassignedOrder{}, err
	}
	s.logger.Info("order withdrawn",
		logx.String("event", "order_withdrawn"),
		logx.String("order_id", o.ID),
		logx.String("order_ref", o.OrderRef),
	)
	s.metrics.Operation(OpWithdraw, OutcomeSuccess, "")
	s.persist(ctx)
	return o, nil
}

// Assign books a shipment on a vehicle.
func (s *Service) Assign(ctx context.Context, shipmentID, vehicleID string, iv domain.Interval) (scheduler.Result, error) {
	return s.place(ctx, OpAssign, shipmentID, vehicleID, iv, s.store.Assign)
}

// Move re-books a shipment on another vehicle.
func (s *Service) Move(ctx context.Context, shipmentID, vehicleID string, iv domain.Interval) (scheduler.Result, error) {
	return s.place(ctx, OpMove, shipmentID, vehicleID, iv, s.store.Move)
}

func (s *Service) place(
	ctx context.Context,
	op, shipmentID, vehicleID string,
	iv domain.Interval,
	fn func(string, string, domain.Interval) (scheduler.Result, error),
) (scheduler.Result, error) {
	shipmentID, err := normalizeID("shipment", shipmentID)
	if err != nil {
		return scheduler.Result{}, err
	}
	vehicleID, err = normalizeID("vehicle", vehicleID)
	if err != nil {
		return scheduler.Result{}, err
	}

	res, err := fn(shipmentID, vehicleID, iv)
	if err != nil {
		s.metrics.Operation(op, OutcomeError, "")
		return scheduler.Result{}, err
	}
	s.report(ctx, op, res,
		logx.String("shipment_id", shipmentID),
		logx.String("vehicle_id", vehicleID),
		logx.Time("start", iv.Start),
		logx.Time("end", iv.End),
	)
	return res, nil
}

// Resize changes a shipment's interval on its current vehicle.
func (s *Service) Resize(ctx context.Context, shipmentID string, iv domain.Interval) (scheduler.Result, error) {
	shipmentID, err := normalizeID("shipment", shipmentID)
	if err != nil {
		return scheduler.Result{}, err
	}
	res, err := s.store.Resize(shipmentID, iv)
	if err != nil {
		s.metrics.Operation(OpResize, OutcomeError, "")
		return scheduler.Result{}, err
	}
	s.report(ctx, OpResize, res,
		logx.String("shipment_id", shipmentID),
		logx.Time("start", iv.Start),
		logx.Time("end", iv.End),
	)
	return res, nil
}

// CreateFromUnassigned schedules a pooled order. A partial result means the
// shipment exists but needs remediation.
func (s *Service) CreateFromUnassigned(ctx context.Context, orderID, vehicleID string, iv domain.Interval) (scheduler.Result, error) {
	orderID, err := normalizeID("order", orderID)
	if err != nil {
		return scheduler.Result{}, err
	}
	vehicleID, err = normalizeID("vehicle", vehicleID)
	if err != nil {
		return scheduler.Result{}, err
	}
	res, err := s.store.CreateFromUnassigned(orderID, vehicleID, iv)
	if err != nil {
		s.metrics.Operation(OpCreate, OutcomeError, "")
		return scheduler.Result{}, err
	}
	s.report(ctx, OpCreate, res,
		logx.String("order_id", orderID),
		logx.String("vehicle_id", vehicleID),
		logx.Time("start", iv.Start),
		logx.Time("end", iv.End),
	)
	return res, nil
}

// Remove returns a shipment to the unassigned pool.
func (s *Service) Remove(ctx context.Context, shipmentID string) (domain.UnassignedOrder, error) {
	shipmentID, err := normalizeID("shipment", shipmentID)
	if err != nil {
		return domain.UnassignedOrder{}, err
	}
	o, err := s.store.Remove(shipmentID)
	if err != nil {
		s.metrics.Operation(OpRemove, OutcomeError, "")
		return domain.UnassignedOrder{}, err
	}
	s.logger.Info("shipment removed",
		logx.String("event", "shipment_removed"),
		logx.String("shipment_id", shipmentID),
		logx.String("order_id", o.ID),
		logx.String("order_ref", o.OrderRef),
		logx.Time("eta_end", o.ETA.End),
	)
	s.metrics.Operation(OpRemove, OutcomeSuccess, "")
	s.persist(ctx)
	return o, nil
}

// AutoAllocate recomputes a shipment's allocation, committing only on its own
// vehicle. A blank vehicleID means the shipment's own vehicle.
func (s *Service) AutoAllocate(ctx context.Context, shipmentID, vehicleID string) (scheduler.AllocationOutcome, error) {
	shipmentID, err := normalizeID("shipment", shipmentID)
	if err != nil {
		return scheduler.AllocationOutcome{}, err
	}
	out, err := s.store.AutoAllocate(shipmentID, strings.TrimSpace(vehicleID))
	if err != nil {
		s.metrics.Operation(OpAutoAllocate, OutcomeError, "")
		return scheduler.AllocationOutcome{}, err
	}

	fields := []logx.Field{
		logx.String("event", "auto_allocated"),
		logx.String("shipment_id", shipmentID),
		logx.String("vehicle_id", out.VehicleID),
		logx.Bool("committed", out.Committed),
		logx.Bool("success", out.Success),
	}
	switch {
	case out.Committed:
		s.logger.Info("allocation recomputed", fields...)
		s.metrics.Operation(OpAutoAllocate, OutcomeSuccess, "")
		s.persist(ctx)
	case out.Success:
		s.logger.Debug("allocation preview", fields...)
		s.metrics.Operation(OpAutoAllocate, OutcomePreview, "")
	default:
		s.logger.Warn("allocation failed", append(fields, logx.Strings("errors", out.Errors))...)
		s.metrics.Operation(OpAutoAllocate, OutcomeRejected, scheduler.ReasonAllocationFailed)
	}
	return out, nil
}

// ReallocateUnreconciled retries the allocation of every unreconciled
// shipment on its own vehicle and returns how many were fixed.
func (s *Service) ReallocateUnreconciled(ctx context.Context) (int, error) {
	pending := s.store.Unreconciled()
	fixed := 0
	for _, sh := range pending {
		if err := ctx.Err(); err != nil {
			return fixed, err
		}
		out, err := s.store.AutoAllocate(sh.ID, sh.VehicleID)
		if err != nil {
			// The shipment or vehicle vanished between listing and retry.
			s.logger.Debug("reallocation skipped", logx.String("shipment_id", sh.ID), logx.Err(err))
			continue
		}
		if out.Committed {
			fixed++
			s.logger.Info("shipment reconciled",
				logx.String("event", "shipment_reconciled"),
				logx.String("shipment_id", sh.ID),
				logx.String("vehicle_id", sh.VehicleID),
			)
		}
	}
	s.metrics.Reallocated(fixed)
	if fixed > 0 {
		s.persist(ctx)
	}
	if len(pending) > 0 {
		s.logger.Info("reallocation sweep finished",
			logx.Int("pending", len(pending)),
			logx.Int("fixed", fixed),
		)
	}
	return fixed, nil
}

func (s *Service) report(ctx context.Context, op string, res scheduler.Result, fields ...logx.Field) {
	fields = append(fields,
		logx.String("event", op),
		logx.Bool("success", res.Success),
	)
	switch {
	case res.Success:
		s.logger.Info("schedule updated", append(fields, logx.Int64("version", res.Version))...)
		s.metrics.Operation(op, OutcomeSuccess, "")
	case res.Partial:
		s.logger.Warn("shipment created with unresolved issues", append(fields,
			logx.String("shipment_id", res.ShipmentID),
			logx.String("reason", string(res.Reason)),
			logx.String("detail", res.Error),
			logx.Strings("allocation_errors", res.AllocationErrors),
		)...)
		s.metrics.Operation(op, OutcomePartial, res.Reason)
	default:
		s.logger.Info("schedule change rejected", append(fields,
			logx.String("reason", string(res.Reason)),
			logx.String("detail", res.Error),
		)...)
		s.metrics.Operation(op, OutcomeRejected, res.Reason)
	}
	if res.Success || res.Partial {
		s.persist(ctx)
	}
}

// persist writes the current snapshot if it is newer than the last one saved.
// Failures are logged and counted; the in-memory state stays authoritative.
func (s *Service) persist(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap := s.store.Snapshot()
	if snap.Version <= s.savedVersion {
		return
	}

	ctx, cancel := s.withTimeout(context.WithoutCancel(ctx))
	defer cancel()

	err := s.snapshots.Save(ctx, snap)
	s.metrics.SnapshotSaved(snap.Version, err)
	if err != nil {
		s.logger.Error("snapshot save failed",
			logx.String("event", "snapshot_save_failed"),
			logx.Int64("version", snap.Version),
			logx.Err(err),
		)
		return
	}
	s.savedVersion = snap.Version
	s.logger.Debug("snapshot saved", logx.Int64("version", snap.Version))
}

// Flush saves any state newer than the last snapshot. Called on shutdown.
func (s *Service) Flush(ctx context.Context) {
	s.persist(ctx)
}
