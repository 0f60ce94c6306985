// Package catalog - Catalog validation
// Ensures the tier table covers every seat count exactly once.
package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Catalog) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateNotEmpty,
		validatePlanPrices,
		validateTierIDs,
		validateTierContiguity,
		validateTierDiscounts,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		if err := rule(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateNotEmpty(c *Catalog) error {
	if len(c.plans) == 0 {
		return fmt.Errorf("catalog has no plans")
	}
	if len(c.tiers) == 0 {
		return fmt.Errorf("catalog has no volume tiers")
	}
	return nil
}

func validatePlanPrices(c *Catalog) error {
	for _, key := range c.order {
		p := c.plans[key]
		if key == "" {
			return fmt.Errorf("plan with empty key")
		}
		if !p.BasePricePerSeat.IsPositive() {
			return fmt.Errorf("plan %s: base price per seat must be positive", key)
		}
		if p.MonthlyPrice.IsNegative() || p.YearlyPrice.IsNegative() {
			return fmt.Errorf("plan %s: list prices must not be negative", key)
		}
	}
	return nil
}

func validateTierIDs(c *Catalog) error {
	seen := make(map[string]bool, len(c.tiers))
	for _, t := range c.tiers {
		if t.ID == "" {
			return fmt.Errorf("tier with empty id")
		}
		if seen[string(t.ID)] {
			return fmt.Errorf("duplicate tier %q", t.ID)
		}
		seen[string(t.ID)] = true
	}
	return nil
}

// validateTierContiguity requires tiers sorted by MinSeats to start at one
// and chain without gaps or overlaps.
func validateTierContiguity(c *Catalog) error {
	if len(c.tiers) == 0 {
		return nil
	}
	if c.tiers[0].MinSeats != 1 {
		return fmt.Errorf("first tier %s must start at 1 seat, starts at %d", c.tiers[0].ID, c.tiers[0].MinSeats)
	}
	for i, t := range c.tiers {
		if t.MaxSeats < t.MinSeats {
			return fmt.Errorf("tier %s: max seats %d below min seats %d", t.ID, t.MaxSeats, t.MinSeats)
		}
		if i == 0 {
			continue
		}
		prev := c.tiers[i-1]
		switch {
		case t.MinSeats <= prev.MaxSeats:
			return fmt.Errorf("tier %s overlaps tier %s", t.ID, prev.ID)
		case t.MinSeats > prev.MaxSeats+1:
			return fmt.Errorf("gap between tier %s and tier %s", prev.ID, t.ID)
		}
	}
	return nil
}

func validateTierDiscounts(c *Catalog) error {
	hundred := decimal.NewFromInt(100)
	for _, t := range c.tiers {
		if t.DiscountPercent.IsNegative() || t.DiscountPercent.GreaterThan(hundred) {
			return fmt.Errorf("tier %s: discount %s outside [0, 100]", t.ID, t.DiscountPercent)
		}
	}
	return nil
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
