package scheduler

import (
	"fmt"
	"strings"
	"time"

	"fleet-scheduler/internal/domain"
)

// Conflict is an existing shipment whose interval intersects a candidate.
type Conflict struct {
	ShipmentID string          `json:"shipment_id"`
	OrderRef   string          `json:"order_ref"`
	Scheduled  domain.Interval `json:"scheduled"`
}

// Availability is the outcome of CheckAvailability.
type Availability struct {
	WithinAvailability bool
	Reason             string
	Overlaps           []Conflict
}

// OK reports whether the candidate can be booked.
func (a Availability) OK() bool {
	return a.WithinAvailability && len(a.Overlaps) == 0
}

// CheckAvailability validates a candidate interval against the vehicle's
// availability window and its existing shipments. The shipment with ID
// excludeID (the one being moved or resized) is ignored. Vehicle status is not
// inspected here.
func CheckAvailability(
	vehicle domain.Vehicle,
	existing []domain.Shipment,
	candidate domain.Interval,
	excludeID string,
) Availability {
	res := Availability{WithinAvailability: true}

	var violated []string
	if candidate.Start.Before(vehicle.Availability.Start) {
		violated = append(violated, fmt.Sprintf("start %s is before vehicle %s availability start %s",
			formatTime(candidate.Start), vehicle.ID, formatTime(vehicle.Availability.Start)))
	}
	if candidate.End.After(vehicle.Availability.End) {
		violated = append(violated, fmt.Sprintf("end %s is after vehicle %s availability end %s",
			formatTime(candidate.End), vehicle.ID, formatTime(vehicle.Availability.End)))
	}
	if len(violated) > 0 {
		res.WithinAvailability = false
		res.Reason = strings.Join(violated, "; ")
	}

	for _, s := range existing {
		if s.ID == excludeID || s.VehicleID != vehicle.ID {
			continue
		}
		if s.Scheduled.Overlaps(candidate) {
			res.Overlaps = append(res.Overlaps, Conflict{
				ShipmentID: s.ID,
				OrderRef:   s.OrderRef,
				Scheduled:  s.Scheduled,
			})
		}
	}
	return res
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func describeOverlaps(vehicleID string, overlaps []Conflict) string {
	refs := make([]string, 0, len(overlaps))
	for _, o := range overlaps {
		refs = append(refs, o.OrderRef)
	}
	return fmt.Sprintf("vehicle %s is already booked for %s", vehicleID, strings.Join(refs, ", "))
}
