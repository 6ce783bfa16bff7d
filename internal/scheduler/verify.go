package scheduler

import (
	"cmp"
	"fmt"
	"slices"

	"fleet-scheduler/internal/domain"
)

// IssueKind classifies a problem found by Verify.
type IssueKind string

// List of issue kinds
const (
	IssueOverlap             IssueKind = "overlap"
	IssueOutsideAvailability IssueKind = "outside_availability"
	IssueUnknownVehicle      IssueKind = "unknown_vehicle"
	IssueUnreconciled        IssueKind = "unreconciled"
	IssueAllocation          IssueKind = "allocation"
)

// Issue is one problem found in a schedule.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	ShipmentID string    `json:"shipment_id"`
	VehicleID  string    `json:"vehicle_id,omitempty"`
	Detail     string    `json:"detail"`
}

// Verify audits a snapshot: overlapping bookings, bookings outside the
// vehicle's availability, allocations that break trailer rules and shipments
// whose allocations do not add up. Shipments committed with unresolved issues
// show up here, so an empty result means the schedule is fully executable.
func Verify(snap Snapshot) []Issue {
	vehicles := make(map[string]domain.Vehicle, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		vehicles[v.ID] = v
	}
	trailers := make(map[string]domain.Trailer, len(snap.Trailers))
	for _, t := range snap.Trailers {
		trailers[t.ID] = t
	}

	shipments := slices.Clone(snap.Shipments)
	slices.SortFunc(shipments, func(a, b domain.Shipment) int {
		if c := cmp.Compare(a.VehicleID, b.VehicleID); c != 0 {
			return c
		}
		if c := a.Scheduled.Start.Compare(b.Scheduled.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var issues []Issue
	for i, sh := range shipments {
		v, ok := vehicles[sh.VehicleID]
		if !ok {
			issues = append(issues, Issue{
				Kind:       IssueUnknownVehicle,
				ShipmentID: sh.ID,
				VehicleID:  sh.VehicleID,
				Detail:     fmt.Sprintf("vehicle %s is not in the fleet", sh.VehicleID),
			})
		} else if !sh.Scheduled.Within(v.Availability) {
			issues = append(issues, Issue{
				Kind:       IssueOutsideAvailability,
				ShipmentID: sh.ID,
				VehicleID:  v.ID,
				Detail: fmt.Sprintf("scheduled %s..%s outside availability %s..%s",
					formatTime(sh.Scheduled.Start), formatTime(sh.Scheduled.End),
					formatTime(v.Availability.Start), formatTime(v.Availability.End)),
			})
		}

		for _, other := range shipments[i+1:] {
			if other.VehicleID != sh.VehicleID {
				break
			}
			if sh.Scheduled.Overlaps(other.Scheduled) {
				issues = append(issues, Issue{
					Kind:       IssueOverlap,
					ShipmentID: sh.ID,
					VehicleID:  sh.VehicleID,
					Detail:     fmt.Sprintf("overlaps shipment %s (%s)", other.ID, other.OrderRef),
				})
			}
		}

		if ok && len(sh.Allocations) > 0 {
			if t, found := trailers[v.TrailerID]; found {
				for _, msg := range ValidateAllocations(sh.Allocations, t, sh.ProductType) {
					issues = append(issues, Issue{
						Kind:       IssueAllocation,
						ShipmentID: sh.ID,
						VehicleID:  v.ID,
						Detail:     msg,
					})
				}
			}
		}

		if !sh.Reconciled() {
			issues = append(issues, Issue{
				Kind:       IssueUnreconciled,
				ShipmentID: sh.ID,
				VehicleID:  sh.VehicleID,
				Detail:     fmt.Sprintf("allocated %s of %s", sh.AllocatedQuantity(), sh.Quantity),
			})
		}
	}
	return issues
}
