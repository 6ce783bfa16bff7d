package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductType identifies a fuel product (diesel, petrol, ...).
type ProductType string

// Compartment is a fixed-capacity subdivision of a trailer bound to one product.
type Compartment struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Capacity        decimal.Decimal `json:"capacity"`
	ProductType     ProductType     `json:"product_type"`
	MandatoryToLoad bool            `json:"mandatory_to_load"`
	MustUse         bool            `json:"must_use"`
	PartialAllowed  bool            `json:"partial_allowed"`
}

// Forced reports whether the compartment takes part in the first allocation pass.
func (c Compartment) Forced() bool {
	return c.MustUse || c.MandatoryToLoad
}

// Trailer is an ordered, non-empty set of compartments.
type Trailer struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Compartments []Compartment `json:"compartments"`
}

// TotalCapacity returns the sum of compartment capacities.
func (t Trailer) TotalCapacity() decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.Compartments {
		total = total.Add(c.Capacity)
	}
	return total
}

// Compartment looks up a compartment by ID.
func (t Trailer) Compartment(id string) (Compartment, bool) {
	for _, c := range t.Compartments {
		if c.ID == id {
			return c, true
		}
	}
	return Compartment{}, false
}

// Validate checks the trailer invariants.
func (t Trailer) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("trailer id is empty")
	}
	if len(t.Compartments) == 0 {
		return fmt.Errorf("trailer %s has no compartments", t.ID)
	}
	seen := make(map[string]struct{}, len(t.Compartments))
	for _, c := range t.Compartments {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("trailer %s: compartment id is empty", t.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("trailer %s: duplicate compartment %s", t.ID, c.ID)
		}
		seen[c.ID] = struct{}{}
		if !c.Capacity.IsPositive() {
			return fmt.Errorf("trailer %s: compartment %s capacity must be positive", t.ID, c.ID)
		}
		if strings.TrimSpace(string(c.ProductType)) == "" {
			return fmt.Errorf("trailer %s: compartment %s has no product type", t.ID, c.ID)
		}
	}
	return nil
}

// Clone returns a copy that does not share the compartment slice.
func (t Trailer) Clone() Trailer {
	t.Compartments = append([]Compartment(nil), t.Compartments...)
	return t
}
