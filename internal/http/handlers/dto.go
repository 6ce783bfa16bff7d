package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

type intervalDTO struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

type vehicleRequest struct {
	Name         string      `json:"name" validate:"required,max=200"`
	Status       string      `json:"status" validate:"required,oneof=active maintenance offline"`
	TrailerID    string      `json:"trailer_id" validate:"max=100"`
	Availability intervalDTO `json:"availability"`
	DriverName   string      `json:"driver_name" validate:"max=200"`
}

type compartmentDTO struct {
	ID              string          `json:"id" validate:"required,max=100"`
	Name            string          `json:"name" validate:"max=200"`
	Capacity        decimal.Decimal `json:"capacity"`
	ProductType     string          `json:"product_type" validate:"required,max=100"`
	MandatoryToLoad bool            `json:"mandatory_to_load"`
	MustUse         bool            `json:"must_use"`
	PartialAllowed  bool            `json:"partial_allowed"`
}

type trailerRequest struct {
	Name         string           `json:"name" validate:"max=200"`
	Compartments []compartmentDTO `json:"compartments" validate:"required,min=1,dive"`
}

type orderRequest struct {
	OrderRef        string          `json:"order_ref" validate:"required,max=100"`
	ProductType     string          `json:"product_type" validate:"required,max=100"`
	Quantity        decimal.Decimal `json:"quantity"`
	Priority        string          `json:"priority" validate:"required,oneof=high medium low"`
	ETA             intervalDTO     `json:"eta"`
	CustomerName    string          `json:"customer_name" validate:"max=200"`
	DeliveryAddress string          `json:"delivery_address" validate:"max=500"`
}

type placementRequest struct {
	VehicleID string    `json:"vehicle_id" validate:"required,max=100"`
	Start     time.Time `json:"start" validate:"required"`
	End       time.Time `json:"end" validate:"required,gtfield=Start"`
}

type resizeRequest struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

type autoAllocateRequest struct {
	VehicleID string `json:"vehicle_id" validate:"max=100"`
}

type resultResponse struct {
	Success          bool                           `json:"success"`
	Partial          bool                           `json:"partial,omitempty"`
	Reason           scheduler.Reason               `json:"reason,omitempty"`
	Error            string                         `json:"error,omitempty"`
	ShipmentID       string                         `json:"shipment_id,omitempty"`
	Overlaps         []scheduler.Conflict           `json:"overlaps,omitempty"`
	AllocationErrors []string                       `json:"allocation_errors,omitempty"`
	Allocations      []domain.CompartmentAllocation `json:"compartment_allocations,omitempty"`
	Version          int64                          `json:"version,omitempty"`
}

type allocationResponse struct {
	Success     bool                           `json:"success"`
	VehicleID   string                         `json:"vehicle_id"`
	Committed   bool                           `json:"committed"`
	Allocations []domain.CompartmentAllocation `json:"allocations"`
	Errors      []string                       `json:"errors"`
	Remaining   decimal.Decimal                `json:"remaining"`
	Version     int64                          `json:"version,omitempty"`
}
