package handlers

import (
	"context"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
	"fleet-scheduler/internal/service/scheduling"
)

type fleetUsecase interface {
	Vehicles(ctx context.Context) []domain.Vehicle
	UpsertVehicle(ctx context.Context, v domain.Vehicle) error
	Trailers(ctx context.Context) []domain.Trailer
	UpsertTrailer(ctx context.Context, t domain.Trailer) error
}

// NewFleetUsecase wires the scheduling service into a fleetUsecase.
func NewFleetUsecase(svc *scheduling.Service) fleetUsecase {
	return svc
}

type scheduleUsecase interface {
	Shipments(ctx context.Context) []domain.Shipment
	UnassignedOrders(ctx context.Context) []domain.UnassignedOrder
	Stats(ctx context.Context) scheduler.Stats
	AddOrder(ctx context.Context, o domain.UnassignedOrder) (domain.UnassignedOrder, error)
	Assign(ctx context.Context, shipmentID, vehicleID string, iv domain.Interval) (scheduler.Result, error)
	Move(ctx context.Context, shipmentID, vehicleID string, iv domain.Interval) (scheduler.Result, error)
	Resize(ctx context.Context, shipmentID string, iv domain.Interval) (scheduler.Result, error)
	CreateFromUnassigned(ctx context.Context, orderID, vehicleID string, iv domain.Interval) (scheduler.Result, error)
	Remove(ctx context.Context, shipmentID string) (domain.UnassignedOrder, error)
	AutoAllocate(ctx context.Context, shipmentID, vehicleID string) (scheduler.AllocationOutcome, error)
}

// NewScheduleUsecase wires the scheduling service into a scheduleUsecase.
func NewScheduleUsecase(svc *scheduling.Service) scheduleUsecase {
	return svc
}
