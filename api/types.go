// Package api - API types for quotes and checkout
// These types define the public contract of the pricing service.
package api

import (
	"seatquote/core/types"
)

// EnterpriseCheckoutRequest is the input to POST /api/enterprise/checkout
type EnterpriseCheckoutRequest struct {
	Plan  types.PlanKey `json:"plan" validate:"required,plan_key"`
	Seats int           `json:"seats" validate:"seats"`
}

// CheckoutRequest is the input to POST /api/checkout
type CheckoutRequest struct {
	Plan         types.PlanKey      `json:"plan" validate:"required,plan_key"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required,billing_cycle"`

	// AffiliateCode overrides the code remembered in the affiliate cookie
	AffiliateCode string `json:"affiliate_code,omitempty" validate:"affiliate_code"`
}

// CheckoutResponse carries the hosted checkout URL the client redirects to
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// PlansResponse is the output of GET /api/plans
type PlansResponse struct {
	BillingCycle  types.BillingCycle `json:"billing_cycle"`
	Plans         []types.PlanOffer  `json:"plans"`
	AffiliateCode string             `json:"affiliate_code,omitempty"`
}

// TiersResponse is the output of GET /api/enterprise/tiers
type TiersResponse struct {
	Tiers    []types.VolumeTier `json:"tiers"`
	MinSeats int                `json:"min_seats"`
	MaxSeats int                `json:"max_seats"`
}

// TierSeatsResponse is the output of GET /api/enterprise/tiers/{id}/seats
type TierSeatsResponse struct {
	Tier  types.TierID `json:"tier"`
	Seats int          `json:"seats"`
}

// AffiliateResponse is the output of GET /api/affiliate/verify
type AffiliateResponse struct {
	Code         string `json:"code"`
	Valid        bool   `json:"valid"`
	DiscountType string `json:"discount_type,omitempty"`
	Message      string `json:"message,omitempty"`
}

// SuccessResponse is the output of the checkout return endpoints
type SuccessResponse struct {
	SessionID string `json:"session_id,omitempty"`

	// AffiliateCleared reports that the remembered affiliate code was dropped
	AffiliateCleared bool `json:"affiliate_cleared"`
}

// ErrorBody is the error envelope of every non-2xx response
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  []ValidationError `json:"fields,omitempty"`
}
