package handlers

import (
	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

func (d intervalDTO) toDomain() domain.Interval {
	return domain.Interval{Start: d.Start, End: d.End}
}

func (req vehicleRequest) toDomain(id string) domain.Vehicle {
	return domain.Vehicle{
		ID:           id,
		Name:         req.Name,
		Status:       domain.VehicleStatus(req.Status),
		TrailerID:    req.TrailerID,
		Availability: req.Availability.toDomain(),
		DriverName:   req.DriverName,
	}
}

func (req trailerRequest) toDomain(id string) domain.Trailer {
	comps := make([]domain.Compartment, 0, len(req.Compartments))
	for _, c := range req.Compartments {
		comps = append(comps, domain.Compartment{
			ID:              c.ID,
			Name:            c.Name,
			Capacity:        c.Capacity,
			ProductType:     domain.ProductType(c.ProductType),
			MandatoryToLoad: c.MandatoryToLoad,
			MustUse:         c.MustUse,
			PartialAllowed:  c.PartialAllowed,
		})
	}
	return domain.Trailer{ID: id, Name: req.Name, Compartments: comps}
}

func (req orderRequest) toDomain() domain.UnassignedOrder {
	return domain.UnassignedOrder{
		OrderRef:        req.OrderRef,
		ProductType:     domain.ProductType(req.ProductType),
		Quantity:        req.Quantity,
		Priority:        domain.Priority(req.Priority),
		ETA:             req.ETA.toDomain(),
		CustomerName:    req.CustomerName,
		DeliveryAddress: req.DeliveryAddress,
	}
}

func (req placementRequest) interval() domain.Interval {
	return domain.Interval{Start: req.Start, End: req.End}
}

func (req resizeRequest) interval() domain.Interval {
	return domain.Interval{Start: req.Start, End: req.End}
}

func toResultResponse(res scheduler.Result) resultResponse {
	return resultResponse{
		Success:          res.Success,
		Partial:          res.Partial,
		Reason:           res.Reason,
		Error:            res.Error,
		ShipmentID:       res.ShipmentID,
		Overlaps:         res.Overlaps,
		AllocationErrors: res.AllocationErrors,
		Allocations:      res.Allocations,
		Version:          res.Version,
	}
}

func toAllocationResponse(out scheduler.AllocationOutcome) allocationResponse {
	allocs := out.Allocations
	if allocs == nil {
		allocs = []domain.CompartmentAllocation{}
	}
	errs := out.Errors
	if errs == nil {
		errs = []string{}
	}
	return allocationResponse{
		Success:     out.Success,
		VehicleID:   out.VehicleID,
		Committed:   out.Committed,
		Allocations: allocs,
		Errors:      errs,
		Remaining:   out.Remaining,
		Version:     out.Version,
	}
}
