package scheduler

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"fleet-scheduler/internal/domain"
)

// Allocation is the outcome of splitting an order across compartments.
type Allocation struct {
	Success     bool                           `json:"success"`
	Allocations []domain.CompartmentAllocation `json:"allocations"`
	Errors      []string                       `json:"errors"`
	Remaining   decimal.Decimal                `json:"remaining"`
}

// Allocate splits quantity of product across the trailer's compartments.
//
// Compartments are visited in a fixed priority order (mustUse, then
// mandatoryToLoad, then capacity, all descending; ties keep trailer order).
// The first pass fills forced compartments, the second pass fills the rest.
// Commitments from the first pass are never revisited, so the result is
// greedy and not globally optimal.
func Allocate(product domain.ProductType, quantity decimal.Decimal, trailer *domain.Trailer) Allocation {
	if trailer == nil {
		return Allocation{
			Errors:    []string{"no trailer attached: there are no compartments to allocate into"},
			Remaining: quantity,
		}
	}
	if !quantity.IsPositive() {
		return Allocation{
			Errors:    []string{fmt.Sprintf("quantity must be positive, got %s", quantity)},
			Remaining: quantity,
		}
	}

	ordered := prioritized(trailer.Compartments)
	remaining := quantity
	used := make(map[string]struct{}, len(ordered))
	var (
		allocs []domain.CompartmentAllocation
		errs   []string
	)

	for _, c := range ordered {
		if !c.Forced() {
			continue
		}
		if c.ProductType != product {
			if c.MustUse {
				errs = append(errs, fmt.Sprintf(
					"compartment %s must be used but is bound to %s, order product is %s",
					c.ID, c.ProductType, product))
			}
			continue
		}
		amount := decimal.Min(remaining, c.Capacity)
		if amount.LessThan(c.Capacity) && !c.PartialAllowed {
			errs = append(errs, fmt.Sprintf(
				"compartment %s does not allow partial fill: %s of %s would be loaded",
				c.ID, amount, c.Capacity))
			continue
		}
		// mustUse compartments stay in the list even once the order is covered.
		if amount.IsZero() && !c.MustUse {
			continue
		}
		allocs = append(allocs, domain.CompartmentAllocation{CompartmentID: c.ID, Quantity: amount})
		used[c.ID] = struct{}{}
		remaining = remaining.Sub(amount)
	}

	for _, c := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if _, ok := used[c.ID]; ok {
			continue
		}
		if c.ProductType != product || c.Forced() {
			continue
		}
		amount := decimal.Min(remaining, c.Capacity)
		if amount.LessThan(c.Capacity) && !c.PartialAllowed {
			continue
		}
		allocs = append(allocs, domain.CompartmentAllocation{CompartmentID: c.ID, Quantity: amount})
		used[c.ID] = struct{}{}
		remaining = remaining.Sub(amount)
	}

	if remaining.IsPositive() {
		errs = append(errs, fmt.Sprintf(
			"%s of %s %s could not be allocated: no eligible compartment has room",
			remaining, quantity, product))
	}

	errs = append(errs, ValidateAllocations(allocs, *trailer, product)...)

	return Allocation{
		Success:     remaining.IsZero() && len(errs) == 0,
		Allocations: allocs,
		Errors:      errs,
		Remaining:   remaining,
	}
}

// ValidateAllocations checks an allocation list against the trailer and
// returns every structural violation found.
func ValidateAllocations(allocs []domain.CompartmentAllocation, trailer domain.Trailer, product domain.ProductType) []string {
	var errs []string
	seen := make(map[string]struct{}, len(allocs))

	for _, a := range allocs {
		if _, dup := seen[a.CompartmentID]; dup {
			errs = append(errs, fmt.Sprintf("compartment %s is allocated more than once", a.CompartmentID))
			continue
		}
		seen[a.CompartmentID] = struct{}{}

		c, ok := trailer.Compartment(a.CompartmentID)
		if !ok {
			errs = append(errs, fmt.Sprintf("compartment %s does not belong to trailer %s", a.CompartmentID, trailer.ID))
			continue
		}
		if a.Quantity.GreaterThan(c.Capacity) {
			errs = append(errs, fmt.Sprintf("compartment %s overfilled: %s exceeds capacity %s",
				c.ID, a.Quantity, c.Capacity))
		}
	}

	for _, c := range trailer.Compartments {
		if !c.MustUse || c.ProductType != product {
			continue
		}
		if _, ok := seen[c.ID]; !ok {
			errs = append(errs, fmt.Sprintf("compartment %s must be used for %s but received nothing", c.ID, product))
		}
	}
	return errs
}

func prioritized(comps []domain.Compartment) []domain.Compartment {
	out := slices.Clone(comps)
	slices.SortStableFunc(out, func(a, b domain.Compartment) int {
		if a.MustUse != b.MustUse {
			return boolDesc(a.MustUse)
		}
		if a.MandatoryToLoad != b.MandatoryToLoad {
			return boolDesc(a.MandatoryToLoad)
		}
		return b.Capacity.Cmp(a.Capacity)
	})
	return out
}

func boolDesc(first bool) int {
	if first {
		return -1
	}
	return 1
}
