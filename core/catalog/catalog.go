// Package catalog holds the static plan and volume tier tables.
// A catalog is built once at startup and read concurrently afterwards.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"seatquote/core/types"
	"seatquote/internal/errors"
)

// Catalog is an immutable set of plans and volume tiers
type Catalog struct {
	currency types.Currency
	plans    map[types.PlanKey]types.Plan
	order    []types.PlanKey

	// tiers sorted by MinSeats ascending
	tiers []types.VolumeTier
}

// New builds a catalog and validates it
func New(currency types.Currency, plans []types.Plan, tiers []types.VolumeTier) (*Catalog, error) {
	c := &Catalog{
		currency: currency,
		plans:    make(map[types.PlanKey]types.Plan, len(plans)),
		tiers:    append([]types.VolumeTier(nil), tiers...),
	}

	for _, p := range plans {
		if _, dup := c.plans[p.Key]; dup {
			return nil, errors.Newf(errors.TypeConfig, "duplicate plan %q", p.Key)
		}
		c.plans[p.Key] = p
		c.order = append(c.order, p.Key)
	}

	sort.SliceStable(c.tiers, func(i, j int) bool {
		return c.tiers[i].MinSeats < c.tiers[j].MinSeats
	})

	if errs := c.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Wrap(errors.TypeConfig, "invalid catalog", joinErrors(errs))
	}
	return c, nil
}

// Default returns the built-in catalog priced in USD
func Default() *Catalog {
	c, err := New(types.CurrencyUSD, defaultPlans(), defaultTiers())
	if err != nil {
		panic(err)
	}
	return c
}

func defaultPlans() []types.Plan {
	return []types.Plan{
		{
			Key:              types.PlanStarter,
			Name:             "Starter",
			Description:      "Great for small teams getting started",
			Tagline:          "Great for trying out AI-powered ER simulations",
			BasePricePerSeat: decimal.RequireFromString("205.20"),
			CasesPerMonth:    5,
			MonthlyPrice:     decimal.NewFromInt(19),
			YearlyPrice:      decimal.NewFromInt(171),
			Features: []string{
				"5 new emergency scenarios per month",
				"Full AI-powered patient interactions",
				"Voice mode available",
				"Case review & feedback",
			},
		},
		{
			Key:              types.PlanCore,
			Name:             "Core",
			Description:      "Perfect for residency programs",
			Tagline:          "Perfect for residents running several sims each month",
			BasePricePerSeat: decimal.RequireFromString("421.20"),
			CasesPerMonth:    15,
			MonthlyPrice:     decimal.NewFromInt(39),
			YearlyPrice:      decimal.NewFromInt(351),
			Features: []string{
				"15 new emergency scenarios per month",
				"Full AI-powered patient interactions",
				"Voice mode available",
				"Case review & feedback",
				"Progress tracking",
			},
			Popular: true,
		},
		{
			Key:              types.PlanPro,
			Name:             "Pro",
			Description:      "Ideal for large institutions",
			Tagline:          "Ideal for serious, ongoing practice",
			BasePricePerSeat: decimal.RequireFromString("853.20"),
			CasesPerMonth:    30,
			MonthlyPrice:     decimal.NewFromInt(79),
			YearlyPrice:      decimal.NewFromInt(711),
			Features: []string{
				"30 new emergency scenarios per month",
				"Full AI-powered patient interactions",
				"Voice mode available",
				"Case review & feedback",
				"Progress tracking",
				"Priority support",
			},
		},
	}
}

func defaultTiers() []types.VolumeTier {
	return []types.VolumeTier{
		{ID: types.TierStandard, Label: "Standard", Range: "1-9 seats", MinSeats: 1, MaxSeats: 9, DiscountPercent: decimal.Zero},
		{ID: types.Tier40, Label: "40% OFF", Range: "10-24 seats", MinSeats: 10, MaxSeats: 24, DiscountPercent: decimal.NewFromInt(40), Popular: true},
		{ID: types.Tier50, Label: "50% OFF", Range: "25-49 seats", MinSeats: 25, MaxSeats: 49, DiscountPercent: decimal.NewFromInt(50)},
		{ID: types.Tier60, Label: "60% OFF", Range: "50+ seats", MinSeats: 50, MaxSeats: 500, DiscountPercent: decimal.NewFromInt(60), BestValue: true},
	}
}

// Currency returns the catalog currency
func (c *Catalog) Currency() types.Currency {
	return c.currency
}

// Plan looks up a plan by key
func (c *Catalog) Plan(key types.PlanKey) (types.Plan, error) {
	p, ok := c.plans[key]
	if !ok {
		return types.Plan{}, errors.NotFound("plan", string(key))
	}
	return p, nil
}

// Plans returns plans in configuration order
func (c *Catalog) Plans() []types.Plan {
	out := make([]types.Plan, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.plans[k])
	}
	return out
}

// Tier looks up a tier by id
func (c *Catalog) Tier(id types.TierID) (types.VolumeTier, error) {
	for _, t := range c.tiers {
		if t.ID == id {
			return t, nil
		}
	}
	return types.VolumeTier{}, errors.NotFound("tier", string(id))
}

// Tiers returns the tiers ordered by seat range
func (c *Catalog) Tiers() []types.VolumeTier {
	return append([]types.VolumeTier(nil), c.tiers...)
}

// MinSeats is the smallest purchasable seat count
func (c *Catalog) MinSeats() int {
	return c.tiers[0].MinSeats
}

// MaxSeats is the seat cap, the upper bound of the last tier
func (c *Catalog) MaxSeats() int {
	return c.tiers[len(c.tiers)-1].MaxSeats
}

// MaxDiscount returns the largest discount offered by any tier
func (c *Catalog) MaxDiscount() decimal.Decimal {
	deepest := decimal.Zero
	for _, t := range c.tiers {
		if t.DiscountPercent.GreaterThan(deepest) {
			deepest = t.DiscountPercent
		}
	}
	return deepest
}
