package payments

import (
	"github.com/shopspring/decimal"

	"seatquote/core/types"
)

// EnterprisePricingResponse is the body of GET /api/payments/enterprise/pricing/
type EnterprisePricingResponse struct {
	Pricing *PricingPayload `json:"pricing"`
}

// PricingPayload is the quote as priced by the payments API
type PricingPayload struct {
	TierLabel              string           `json:"tier_label"`
	DiscountPercent        *decimal.Decimal `json:"discount_percent"`
	PricePerSeatAnnual     *decimal.Decimal `json:"price_per_seat_annual"`
	TotalAnnual            *decimal.Decimal `json:"total_annual"`
	TotalMonthlyEquivalent *decimal.Decimal `json:"total_monthly_equivalent"`
	SavingsAnnual          *decimal.Decimal `json:"savings_annual"`
	BasePricePerSeat       *decimal.Decimal `json:"base_price_per_seat"`
}

// missing returns the name of the first absent numeric field
func (p *PricingPayload) missing() string {
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"discount_percent", p.DiscountPercent},
		{"price_per_seat_annual", p.PricePerSeatAnnual},
		{"total_annual", p.TotalAnnual},
		{"total_monthly_equivalent", p.TotalMonthlyEquivalent},
		{"savings_annual", p.SavingsAnnual},
		{"base_price_per_seat", p.BasePricePerSeat},
	}
	for _, f := range fields {
		if f.value == nil {
			return f.name
		}
	}
	return ""
}

func (p *PricingPayload) quote() types.Quote {
	return types.Quote{
		TierLabel:         p.TierLabel,
		DiscountPercent:   *p.DiscountPercent,
		BasePricePerSeat:  *p.BasePricePerSeat,
		PricePerSeat:      *p.PricePerSeatAnnual,
		TotalAnnual:       *p.TotalAnnual,
		MonthlyEquivalent: *p.TotalMonthlyEquivalent,
		SavingsAnnual:     *p.SavingsAnnual,
	}
}

// EnterpriseCheckoutRequest is the body of POST /api/payments/enterprise/checkout/
type EnterpriseCheckoutRequest struct {
	Tier       types.PlanKey `json:"tier"`
	Quantity   int           `json:"quantity"`
	SuccessURL string        `json:"success_url"`
	CancelURL  string        `json:"cancel_url"`
}

// CheckoutRequest is the body of POST /api/payments/checkout/.
// AffiliateCode is sent as null when there is none.
type CheckoutRequest struct {
	Tier          types.PlanKey      `json:"tier"`
	BillingCycle  types.BillingCycle `json:"billing_cycle"`
	SuccessURL    string             `json:"success_url"`
	CancelURL     string             `json:"cancel_url"`
	AffiliateCode *string            `json:"affiliate_code"`
}

// CheckoutResponse carries the redirect target of a new checkout session
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// AffiliateVerification is the body of GET /api/payments/affiliate/verify/
type AffiliateVerification struct {
	Valid        bool   `json:"valid"`
	DiscountType string `json:"discount_type,omitempty"`
	Message      string `json:"message,omitempty"`
}

// errorPayload covers the error shapes the payments API returns
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (e errorPayload) text() string {
	for _, s := range []string{e.Error, e.Message, e.Detail} {
		if s != "" {
			return s
		}
	}
	return ""
}
