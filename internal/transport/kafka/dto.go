package kafka

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/service/orders"
)

// EventDTO is the wire form of an order-intake event.
type EventDTO struct {
	Type            string          `json:"type"`
	OrderRef        string          `json:"order_ref"`
	ProductType     string          `json:"product_type,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Priority        string          `json:"priority,omitempty"`
	ETA             *IntervalDTO    `json:"eta,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// IntervalDTO is a [start, end) window on the wire.
type IntervalDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ToDomain converts EventDTO to orders.Event.
func ToDomain(dto EventDTO) orders.Event {
	ev := orders.Event{
		Type:            strings.TrimSpace(dto.Type),
		OrderRef:        strings.TrimSpace(dto.OrderRef),
		ProductType:     domain.ProductType(strings.TrimSpace(dto.ProductType)),
		Quantity:        dto.Quantity,
		Priority:        domain.Priority(strings.ToLower(strings.TrimSpace(dto.Priority))),
		CustomerName:    strings.TrimSpace(dto.CustomerName),
		DeliveryAddress: strings.TrimSpace(dto.DeliveryAddress),
		OccurredAt:      dto.OccurredAt,
	}
	if dto.ETA != nil {
		ev.ETA = domain.Interval{Start: dto.ETA.Start, End: dto.ETA.End}
	}
	return ev
}
