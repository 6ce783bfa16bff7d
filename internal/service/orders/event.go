package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-scheduler/internal/domain"
)

// List of recognised event types
const (
	TypeCreated  = "order.created"
	TypeCanceled = "order.canceled"
)

// Event is a single order-intake event.
type Event struct {
	Type            string
	OrderRef        string
	ProductType     domain.ProductType
	Quantity        decimal.Decimal
	Priority        domain.Priority
	ETA             domain.Interval
	CustomerName    string
	DeliveryAddress string
	OccurredAt      time.Time
}

// Order builds the unassigned order an order.created event describes.
func (e Event) Order() domain.UnassignedOrder {
	return domain.UnassignedOrder{
		OrderRef:        e.OrderRef,
		ProductType:     e.ProductType,
		Quantity:        e.Quantity,
		Priority:        e.Priority,
		ETA:             e.ETA,
		CustomerName:    e.CustomerName,
		DeliveryAddress: e.DeliveryAddress,
	}
}
