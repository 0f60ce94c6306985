package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatquote/core/catalog"
	"seatquote/core/types"
	"seatquote/internal/errors"
)

func TestResolveTierBoundaries(t *testing.T) {
	tiers := catalog.Default().Tiers()

	tests := []struct {
		seats int
		want  types.TierID
	}{
		{1, types.TierStandard},
		{9, types.TierStandard},
		{10, types.Tier40},
		{24, types.Tier40},
		{25, types.Tier50},
		{49, types.Tier50},
		{50, types.Tier60},
		{500, types.Tier60},
	}

	for _, tt := range tests {
		tier, err := ResolveTier(tiers, tt.seats)
		require.NoError(t, err)
		assert.Equal(t, tt.want, tier.ID, "seats=%d", tt.seats)
	}
}

func TestResolveTierExactlyOneMatch(t *testing.T) {
	c := catalog.Default()
	tiers := c.Tiers()

	for n := c.MinSeats(); n <= c.MaxSeats(); n++ {
		matches := 0
		for _, tier := range tiers {
			if tier.Contains(n) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "seats=%d", n)

		resolved, err := ResolveTier(tiers, n)
		require.NoError(t, err)
		require.True(t, resolved.Contains(n), "seats=%d resolved to %s", n, resolved.ID)
	}
}

func TestResolveTierBelowFirstThreshold(t *testing.T) {
	_, err := ResolveTier(catalog.Default().Tiers(), 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestValidateSeats(t *testing.T) {
	assert.NoError(t, ValidateSeats(1, 1, 500))
	assert.NoError(t, ValidateSeats(500, 1, 500))
	assert.True(t, errors.IsType(ValidateSeats(0, 1, 500), errors.TypeInput))
	assert.True(t, errors.IsType(ValidateSeats(501, 1, 500), errors.TypeInput))
	assert.True(t, errors.IsType(ValidateSeats(-3, 1, 500), errors.TypeInput))
}

func TestComputeQuoteProThirtySeats(t *testing.T) {
	c := catalog.Default()
	plan, err := c.Plan(types.PlanPro)
	require.NoError(t, err)
	tier, err := ResolveTier(c.Tiers(), 30)
	require.NoError(t, err)

	q := ComputeQuote(plan, tier, 30, types.CurrencyUSD)

	assert.Equal(t, types.Tier50, q.Tier)
	assert.Equal(t, "25-49 seats", q.TierLabel)
	assert.True(t, q.PricePerSeat.Equal(decimal.RequireFromString("426.60")), "price per seat %s", q.PricePerSeat)
	assert.True(t, q.TotalAnnual.Equal(decimal.RequireFromString("12798.00")), "total %s", q.TotalAnnual)
	assert.True(t, q.SavingsAnnual.Equal(decimal.RequireFromString("12798.00")), "savings %s", q.SavingsAnnual)
	assert.True(t, q.MonthlyEquivalent.Equal(decimal.RequireFromString("1066.50")), "monthly %s", q.MonthlyEquivalent)
}

func TestComputeQuoteStarterFiveSeats(t *testing.T) {
	c := catalog.Default()
	plan, err := c.Plan(types.PlanStarter)
	require.NoError(t, err)
	tier, err := ResolveTier(c.Tiers(), 5)
	require.NoError(t, err)

	q := ComputeQuote(plan, tier, 5, types.CurrencyUSD)

	assert.Equal(t, types.TierStandard, q.Tier)
	assert.True(t, q.TotalAnnual.Equal(decimal.RequireFromString("1026.00")), "total %s", q.TotalAnnual)
	assert.True(t, q.SavingsAnnual.IsZero(), "savings %s", q.SavingsAnnual)
}

func TestComputeQuoteInvariantsHoldForEveryPlanAndSeatCount(t *testing.T) {
	c := catalog.Default()
	tolerance := decimal.RequireFromString("0.000001")

	for _, plan := range c.Plans() {
		for n := c.MinSeats(); n <= c.MaxSeats(); n++ {
			tier, err := ResolveTier(c.Tiers(), n)
			require.NoError(t, err)
			q := ComputeQuote(plan, tier, n, c.Currency())

			product := q.PricePerSeat.Mul(decimal.NewFromInt(int64(n)))
			require.True(t, q.TotalAnnual.Sub(product).Abs().LessThanOrEqual(tolerance),
				"%s/%d total %s != %s", plan.Key, n, q.TotalAnnual, product)
			require.False(t, q.SavingsAnnual.IsNegative(), "%s/%d negative savings", plan.Key, n)
			require.True(t, q.UndiscountedAnnual().Sub(q.TotalAnnual).Equal(q.SavingsAnnual))
		}
	}
}

func TestSnapSeatsUsesTierMinimum(t *testing.T) {
	c := catalog.Default()

	seats, err := SnapSeats(c, types.Tier50)
	require.NoError(t, err)
	assert.Equal(t, 25, seats)

	_, err = SnapSeats(c, "tier99")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestStartingPriceUsesDeepestDiscount(t *testing.T) {
	c := catalog.Default()
	plan, err := c.Plan(types.PlanPro)
	require.NoError(t, err)

	got := StartingPrice(plan, c.MaxDiscount())
	assert.True(t, got.Equal(decimal.RequireFromString("341.28")), "starting price %s", got)
}

func TestOffersFollowBillingCycle(t *testing.T) {
	c := catalog.Default()

	monthly, err := Offers(c, types.BillingMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 3)
	assert.Equal(t, types.PlanStarter, monthly[0].Key)
	assert.Equal(t, "19", monthly[0].Price.String())
	assert.Equal(t, "82.08", monthly[0].EnterpriseFrom.String())

	annual, err := Offers(c, types.BillingAnnual)
	require.NoError(t, err)
	assert.Equal(t, "351", annual[1].Price.String())
	assert.True(t, annual[1].Popular)

	_, err = Offers(c, "weekly")
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestOffersCarryPricingPageDetails(t *testing.T) {
	c := catalog.Default()

	monthly, err := Offers(c, types.BillingMonthly)
	require.NoError(t, err)
	assert.Equal(t, "39", monthly[1].PricePerMonth.String())
	assert.Equal(t, "Perfect for residents running several sims each month", monthly[1].Description)
	assert.Contains(t, monthly[1].Features, "Progress tracking")
	assert.Len(t, monthly[2].Features, 6)

	annual, err := Offers(c, types.BillingAnnual)
	require.NoError(t, err)
	want := []string{"14.25", "29.25", "59.25"}
	for i, o := range annual {
		assert.Equal(t, want[i], o.PricePerMonth.String(), "plan %s", o.Key)
	}
}

func TestOffersFallBackToPlanDescription(t *testing.T) {
	plan := types.Plan{
		Key:              "solo",
		Name:             "Solo",
		Description:      "One seat",
		BasePricePerSeat: decimal.NewFromInt(100),
		MonthlyPrice:     decimal.NewFromInt(10),
		YearlyPrice:      decimal.NewFromInt(100),
	}
	tiers := []types.VolumeTier{{ID: "all", MinSeats: 1, MaxSeats: 10, DiscountPercent: decimal.Zero}}
	c, err := catalog.New(types.CurrencyUSD, []types.Plan{plan}, tiers)
	require.NoError(t, err)

	offers, err := Offers(c, types.BillingAnnual)
	require.NoError(t, err)
	assert.Equal(t, "One seat", offers[0].Description)
	assert.Equal(t, "8.33", offers[0].PricePerMonth.String())
	assert.Empty(t, offers[0].Features)
}
