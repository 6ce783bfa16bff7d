package domain

import "github.com/shopspring/decimal"

// CompartmentAllocation is the quantity placed into one compartment.
type CompartmentAllocation struct {
	CompartmentID string          `json:"compartment_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// Shipment is an order bound to a vehicle with a concrete interval.
type Shipment struct {
	ID              string                  `json:"id"`
	OrderRef        string                  `json:"order_ref"`
	VehicleID       string                  `json:"vehicle_id"`
	ProductType     ProductType             `json:"product_type"`
	Quantity        decimal.Decimal         `json:"quantity"`
	Priority        Priority                `json:"priority"`
	Scheduled       Interval                `json:"scheduled"`
	Allocations     []CompartmentAllocation `json:"compartment_allocations"`
	Status          ShipmentStatus          `json:"status"`
	CustomerName    string                  `json:"customer_name"`
	DeliveryAddress string                  `json:"delivery_address"`
}

// AllocatedQuantity sums the compartment allocations.
func (s Shipment) AllocatedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Allocations {
		total = total.Add(a.Quantity)
	}
	return total
}

// Reconciled reports whether the allocations account for the whole quantity.
func (s Shipment) Reconciled() bool {
	return s.AllocatedQuantity().Equal(s.Quantity)
}

// Clone returns a copy that does not share the allocation slice.
func (s Shipment) Clone() Shipment {
	s.Allocations = append([]CompartmentAllocation(nil), s.Allocations...)
	return s
}
