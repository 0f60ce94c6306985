package pricing

import (
	"github.com/shopspring/decimal"

	"seatquote/core/types"
)

var monthsPerYear = decimal.NewFromInt(12)

// ComputeQuote prices seats of plan at the tier's discount:
//
//	price_per_seat     = base_price * (1 - discount_percent / 100)
//	total_annual       = price_per_seat * seats
//	monthly_equivalent = total_annual / 12, rounded to cents
//	savings_annual     = base_price * seats - total_annual
func ComputeQuote(plan types.Plan, tier types.VolumeTier, seats int, currency types.Currency) types.Quote {
	n := decimal.NewFromInt(int64(seats))
	perSeat := plan.BasePricePerSeat.Mul(tier.Multiplier())
	total := perSeat.Mul(n)

	return types.Quote{
		Plan:              plan.Key,
		Seats:             seats,
		Tier:              tier.ID,
		TierLabel:         tier.Range,
		DiscountPercent:   tier.DiscountPercent,
		BasePricePerSeat:  plan.BasePricePerSeat,
		PricePerSeat:      perSeat,
		TotalAnnual:       total,
		MonthlyEquivalent: total.Div(monthsPerYear).Round(2),
		SavingsAnnual:     plan.BasePricePerSeat.Mul(n).Sub(total),
		Currency:          currency,
	}
}

// StartingPrice is the lowest per-seat annual price a plan reaches, at the
// deepest discount in the catalog.
func StartingPrice(plan types.Plan, maxDiscount decimal.Decimal) decimal.Decimal {
	tier := types.VolumeTier{DiscountPercent: maxDiscount}
	return plan.BasePricePerSeat.Mul(tier.Multiplier())
}
