package pricing

import (
	"seatquote/core/catalog"
	"seatquote/core/types"
	"seatquote/internal/errors"
)

// Offers lists every plan at its individual price for cycle, in catalog order.
func Offers(c *catalog.Catalog, cycle types.BillingCycle) ([]types.PlanOffer, error) {
	if !cycle.Valid() {
		return nil, errors.Newf(errors.TypeInput, "billing cycle must be %q or %q, got %q",
			types.BillingMonthly, types.BillingAnnual, cycle)
	}

	maxDiscount := c.MaxDiscount()
	plans := c.Plans()
	offers := make([]types.PlanOffer, 0, len(plans))
	for _, p := range plans {
		description := p.Tagline
		if description == "" {
			description = p.Description
		}
		offers = append(offers, types.PlanOffer{
			Key:            p.Key,
			Name:           p.Name,
			Description:    description,
			CasesPerMonth:  p.CasesPerMonth,
			BillingCycle:   cycle,
			Price:          p.Price(cycle),
			PricePerMonth:  p.PricePerMonth(cycle),
			Currency:       c.Currency(),
			Features:       p.Features,
			EnterpriseFrom: StartingPrice(p, maxDiscount),
			Popular:        p.Popular,
		})
	}
	return offers, nil
}
