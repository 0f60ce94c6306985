// Package types - Pricing types shared by the catalog, the resolver and the API.
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// PlanKey identifies a subscription plan
type PlanKey string

const (
	PlanStarter PlanKey = "starter"
	PlanCore    PlanKey = "core"
	PlanPro     PlanKey = "pro"
)

// TierID identifies a volume discount tier
type TierID string

const (
	TierStandard TierID = "standard"
	Tier40       TierID = "tier40"
	Tier50       TierID = "tier50"
	Tier60       TierID = "tier60"
)

// BillingCycle is the billing period of an individual subscription
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingAnnual  BillingCycle = "annual"
)

// Valid reports whether c is a known billing cycle
func (c BillingCycle) Valid() bool {
	return c == BillingMonthly || c == BillingAnnual
}

// Plan is a subscription plan. Plans are immutable once the catalog is built.
type Plan struct {
	// Key is the plan identifier sent to the payments API
	Key PlanKey `json:"key" yaml:"key"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Description is the enterprise page one-liner
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tagline is the pricing page one-liner for individual subscriptions
	Tagline string `json:"tagline,omitempty" yaml:"tagline,omitempty"`

	// Features are the bullet points listed under the plan
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`

	// BasePricePerSeat is the undiscounted annual price of one enterprise seat
	BasePricePerSeat decimal.Decimal `json:"base_price_per_seat" yaml:"base_price_per_seat"`

	// CasesPerMonth is the included monthly usage quota per seat
	CasesPerMonth int `json:"cases_per_month" yaml:"cases_per_month"`

	// MonthlyPrice is the list price of an individual monthly subscription
	MonthlyPrice decimal.Decimal `json:"monthly_price" yaml:"monthly_price"`

	// YearlyPrice is the list price of an individual annual subscription
	YearlyPrice decimal.Decimal `json:"yearly_price" yaml:"yearly_price"`

	// Popular marks the plan highlighted on the pricing page
	Popular bool `json:"popular,omitempty" yaml:"popular,omitempty"`
}

// Price returns the list price for an individual subscription billed every cycle.
func (p Plan) Price(cycle BillingCycle) decimal.Decimal {
	if cycle == BillingAnnual {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// PricePerMonth returns what an individual subscription billed every cycle
// costs per month. Annual prices are spread over 12 months and rounded to cents.
func (p Plan) PricePerMonth(cycle BillingCycle) decimal.Decimal {
	if cycle == BillingAnnual {
		return p.YearlyPrice.Div(decimal.NewFromInt(12)).Round(2)
	}
	return p.MonthlyPrice
}

// VolumeTier maps an inclusive seat range to a discount percentage.
type VolumeTier struct {
	ID              TierID          `json:"id" yaml:"id"`
	Label           string          `json:"label" yaml:"label"`
	Range           string          `json:"range" yaml:"range"`
	MinSeats        int             `json:"min_seats" yaml:"min_seats"`
	MaxSeats        int             `json:"max_seats" yaml:"max_seats"`
	DiscountPercent decimal.Decimal `json:"discount_percent" yaml:"discount_percent"`
	Popular         bool            `json:"popular,omitempty" yaml:"popular,omitempty"`
	BestValue       bool            `json:"best_value,omitempty" yaml:"best_value,omitempty"`
}

// Contains reports whether seats falls inside the tier range
func (t VolumeTier) Contains(seats int) bool {
	return seats >= t.MinSeats && seats <= t.MaxSeats
}

// Multiplier returns 1 - discount/100
func (t VolumeTier) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(t.DiscountPercent.Div(decimal.NewFromInt(100)))
}

// Quote is the price summary for a plan at a seat count. It is derived on
// every request and never stored.
type Quote struct {
	Plan              PlanKey         `json:"plan" yaml:"plan"`
	Seats             int             `json:"seats" yaml:"seats"`
	Tier              TierID          `json:"tier" yaml:"tier"`
	TierLabel         string          `json:"tier_label" yaml:"tier_label"`
	DiscountPercent   decimal.Decimal `json:"discount_percent" yaml:"discount_percent"`
	BasePricePerSeat  decimal.Decimal `json:"base_price_per_seat" yaml:"base_price_per_seat"`
	PricePerSeat      decimal.Decimal `json:"price_per_seat_annual" yaml:"price_per_seat_annual"`
	TotalAnnual       decimal.Decimal `json:"total_annual" yaml:"total_annual"`
	MonthlyEquivalent decimal.Decimal `json:"total_monthly_equivalent" yaml:"total_monthly_equivalent"`
	SavingsAnnual     decimal.Decimal `json:"savings_annual" yaml:"savings_annual"`
	Currency          Currency        `json:"currency" yaml:"currency"`
}

// UndiscountedAnnual returns base price times seats
func (q Quote) UndiscountedAnnual() decimal.Decimal {
	return q.BasePricePerSeat.Mul(decimal.NewFromInt(int64(q.Seats)))
}

// PlanOffer is a plan as listed on the pricing page for one billing cycle
type PlanOffer struct {
	Key           PlanKey         `json:"key" yaml:"key"`
	Name          string          `json:"name" yaml:"name"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	CasesPerMonth int             `json:"cases_per_month" yaml:"cases_per_month"`
	BillingCycle  BillingCycle    `json:"billing_cycle" yaml:"billing_cycle"`
	Price         decimal.Decimal `json:"price" yaml:"price"`
	PricePerMonth decimal.Decimal `json:"price_per_month" yaml:"price_per_month"`
	Currency      Currency        `json:"currency" yaml:"currency"`
	Features      []string        `json:"features,omitempty" yaml:"features,omitempty"`

	// EnterpriseFrom is the lowest per-seat annual price across volume tiers
	EnterpriseFrom decimal.Decimal `json:"enterprise_from" yaml:"enterprise_from"`

	Popular bool `json:"popular,omitempty" yaml:"popular,omitempty"`
}
