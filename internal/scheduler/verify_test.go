package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

func kinds(issues []scheduler.Issue) []scheduler.IssueKind {
	out := make([]scheduler.IssueKind, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Kind)
	}
	return out
}

func TestVerify_CleanSchedule(t *testing.T) {
	t.Parallel()

	s := newStore(t, scheduler.Options{})
	schedule(t, s, "ORD-1", "diesel", "5000", "v-1", span(6, 10))
	schedule(t, s, "ORD-2", "diesel", "5000", "v-1", span(10, 12))
	schedule(t, s, "ORD-3", "petrol", "6000", "v-2", span(8, 9))

	require.Empty(t, scheduler.Verify(s.Snapshot()))
}

func TestVerify_FindsProblems(t *testing.T) {
	t.Parallel()

	s := newStore(t, scheduler.Options{})
	schedule(t, s, "ORD-1", "diesel", "5000", "v-1", span(8, 12))
	snap := s.Snapshot()

	good := snap.Shipments[0]

	overlapping := good.Clone()
	overlapping.ID = "sh-overlap"
	overlapping.OrderRef = "ORD-9"
	overlapping.Scheduled = span(11, 13)

	late := good.Clone()
	late.ID = "sh-late"
	late.OrderRef = "ORD-10"
	late.VehicleID = "v-2"
	late.Scheduled = span(17, 20)

	ghost := good.Clone()
	ghost.ID = "sh-ghost"
	ghost.OrderRef = "ORD-11"
	ghost.VehicleID = "v-404"

	short := good.Clone()
	short.ID = "sh-short"
	short.OrderRef = "ORD-12"
	short.VehicleID = "v-2"
	short.Scheduled = span(6, 7)
	short.Allocations = []domain.CompartmentAllocation{{CompartmentID: "comp-diesel", Quantity: qty("1000")}}

	bad := good.Clone()
	bad.ID = "sh-bad"
	bad.OrderRef = "ORD-13"
	bad.VehicleID = "v-2"
	bad.Scheduled = span(13, 14)
	bad.Quantity = qty("9000")
	bad.Allocations = []domain.CompartmentAllocation{{CompartmentID: "comp-diesel", Quantity: qty("9000")}}

	snap.Shipments = append(snap.Shipments, overlapping, late, ghost, short, bad)

	issues := scheduler.Verify(snap)
	require.ElementsMatch(t, []scheduler.IssueKind{
		scheduler.IssueOverlap,
		scheduler.IssueOutsideAvailability,
		scheduler.IssueUnknownVehicle,
		scheduler.IssueUnreconciled,
		scheduler.IssueAllocation,
	}, kinds(issues))

	byShipment := map[string]scheduler.IssueKind{}
	for _, is := range issues {
		byShipment[is.ShipmentID] = is.Kind
	}
	require.Equal(t, scheduler.IssueOutsideAvailability, byShipment["sh-late"])
	require.Equal(t, scheduler.IssueUnknownVehicle, byShipment["sh-ghost"])
	require.Equal(t, scheduler.IssueUnreconciled, byShipment["sh-short"])
	require.Equal(t, scheduler.IssueAllocation, byShipment["sh-bad"])
}

func TestVerify_BackToBackIsNotOverlap(t *testing.T) {
	t.Parallel()

	s := newStore(t, scheduler.Options{})
	schedule(t, s, "ORD-1", "diesel", "1000", "v-1", span(8, 9))
	schedule(t, s, "ORD-2", "diesel", "1000", "v-1", span(9, 10))

	require.NotContains(t, kinds(scheduler.Verify(s.Snapshot())), scheduler.IssueOverlap)
}
