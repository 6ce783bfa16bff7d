package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedOrder is a pending delivery request not yet bound to a vehicle.
type UnassignedOrder struct {
	ID              string          `json:"id"`
	OrderRef        string          `json:"order_ref"`
	ProductType     ProductType     `json:"product_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Priority        Priority        `json:"priority"`
	ETA             Interval        `json:"eta"`
	CustomerName    string          `json:"customer_name"`
	DeliveryAddress string          `json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Validate checks the order invariants.
func (o UnassignedOrder) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("order id is empty")
	}
	if strings.TrimSpace(o.OrderRef) == "" {
		return fmt.Errorf("order %s: order ref is empty", o.ID)
	}
	if strings.TrimSpace(string(o.ProductType)) == "" {
		return fmt.Errorf("order %s: product type is empty", o.ID)
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("order %s: quantity must be positive", o.ID)
	}
	if !o.Priority.Valid() {
		return fmt.Errorf("order %s: unknown priority %q", o.ID, o.Priority)
	}
	if !o.ETA.Valid() {
		return fmt.Errorf("order %s: eta start must be before end", o.ID)
	}
	return nil
}
