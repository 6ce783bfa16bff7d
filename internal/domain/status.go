package domain

type (
	// VehicleStatus represents the operational status of a vehicle.
	VehicleStatus string
	// ShipmentStatus represents the status of a shipment.
	ShipmentStatus string
	// Priority represents the urgency of an order.
	Priority string
)

// List of possible vehicle statuses
const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleOffline     VehicleStatus = "offline"
)

// List of possible shipment statuses
const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentAssigned  ShipmentStatus = "assigned"
	ShipmentInTransit ShipmentStatus = "in-transit"
	ShipmentDelivered ShipmentStatus = "delivered"
)

// List of possible priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var allowedVehicleStatuses = [...]VehicleStatus{
	VehicleActive, VehicleMaintenance, VehicleOffline,
}

var allowedShipmentStatuses = [...]ShipmentStatus{
	ShipmentPending, ShipmentAssigned, ShipmentInTransit, ShipmentDelivered,
}

var allowedPriorities = [...]Priority{
	PriorityHigh, PriorityMedium, PriorityLow,
}

// Valid checks if the VehicleStatus is valid
func (s VehicleStatus) Valid() bool {
	for _, v := range allowedVehicleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the ShipmentStatus is valid
func (s ShipmentStatus) Valid() bool {
	for _, v := range allowedShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the Priority is valid
func (p Priority) Valid() bool {
	for _, v := range allowedPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Rank orders priorities from most to least urgent (high=0).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
