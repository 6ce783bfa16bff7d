package scheduler

import "fleet-scheduler/internal/domain"

// Reason classifies why a lifecycle operation was rejected.
type Reason string

// List of rejection reasons
const (
	ReasonOutsideAvailability Reason = "outside_availability"
	ReasonOverlap             Reason = "overlap"
	ReasonETAWindow           Reason = "eta_window"
	ReasonAllocationFailed    Reason = "allocation_failed"
	ReasonVehicleInactive     Reason = "vehicle_inactive"
)

// Result is the structured outcome of a lifecycle operation.
//
// Success=false with Partial=true only comes from CreateFromUnassigned: the
// shipment was committed under ShipmentID but needs manual remediation.
type Result struct {
	Success          bool
	Partial          bool
	Reason           Reason
	Error            string
	ShipmentID       string
	Overlaps         []Conflict
	AllocationErrors []string
	Allocations      []domain.CompartmentAllocation
	Version          int64
}

// AllocationOutcome is returned by AutoAllocate.
type AllocationOutcome struct {
	Allocation
	VehicleID string
	Committed bool
	Version   int64
}

func rejectAvailability(vehicleID string, av Availability) Result {
	if !av.WithinAvailability {
		return Result{
			Reason:   ReasonOutsideAvailability,
			Error:    av.Reason,
			Overlaps: av.Overlaps,
		}
	}
	return Result{
		Reason:   ReasonOverlap,
		Error:    describeOverlaps(vehicleID, av.Overlaps),
		Overlaps: av.Overlaps,
	}
}

func rejectAllocation(alloc Allocation) Result {
	return Result{
		Reason:           ReasonAllocationFailed,
		Error:            "compartment allocation failed",
		AllocationErrors: alloc.Errors,
		Allocations:      alloc.Allocations,
	}
}
