package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatquote/core/types"
	"seatquote/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, UserAgent: "seatquote-test"})
}

func TestEnterprisePricingDecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, enterprisePricingPath, r.URL.Path)
		assert.Equal(t, "pro", r.URL.Query().Get("tier"))
		assert.Equal(t, "30", r.URL.Query().Get("quantity"))
		assert.Equal(t, "seatquote-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pricing":{
			"tier_label":"25-49 seats",
			"discount_percent":50,
			"price_per_seat_annual":"426.60",
			"total_annual":12798,
			"total_monthly_equivalent":1066.5,
			"savings_annual":12798,
			"base_price_per_seat":853.2}}`))
	})

	q, err := client.EnterprisePricing(context.Background(), types.PlanPro, 30)
	require.NoError(t, err)

	assert.Equal(t, "25-49 seats", q.TierLabel)
	assert.Equal(t, "50", q.DiscountPercent.String())
	assert.Equal(t, "426.6", q.PricePerSeat.String())
	assert.Equal(t, "12798", q.TotalAnnual.String())
	assert.Equal(t, "1066.5", q.MonthlyEquivalent.String())
	assert.Equal(t, "853.2", q.BasePricePerSeat.String())
}

func TestEnterprisePricingFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType errors.Type
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, errType: errors.TypeUpstream},
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"quantity out of range"}`, errType: errors.TypeUpstream},
		{name: "null pricing", status: http.StatusOK, body: `{"pricing":null}`, errType: errors.TypeParsing},
		{name: "missing field", status: http.StatusOK, body: `{"pricing":{"tier_label":"x","discount_percent":0}}`, errType: errors.TypeParsing},
		{name: "not json", status: http.StatusOK, body: `<html>`, errType: errors.TypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.EnterprisePricing(context.Background(), types.PlanCore, 10)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestEnterprisePricingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(&Config{BaseURL: url, Timeout: time.Second})
	_, err := client.EnterprisePricing(context.Background(), types.PlanCore, 10)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNetwork))
}

func TestCreateEnterpriseCheckout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, enterpriseCheckoutPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "core", body["tier"])
		assert.Equal(t, float64(15), body["quantity"])
		assert.Equal(t, "https://example.com/enterprise/success", body["success_url"])
		assert.Equal(t, "https://example.com/enterprise", body["cancel_url"])

		_, _ = w.Write([]byte(`{"checkout_url":"https://checkout.example/session/abc"}`))
	})

	resp, err := client.CreateEnterpriseCheckout(context.Background(), EnterpriseCheckoutRequest{
		Tier:       types.PlanCore,
		Quantity:   15,
		SuccessURL: "https://example.com/enterprise/success",
		CancelURL:  "https://example.com/enterprise",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/session/abc", resp.CheckoutURL)
}

func TestCreateCheckoutSurfacesUpstreamMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid tier"}`))
	})

	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Tier: "gold", BillingCycle: types.BillingMonthly})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUpstream))
	assert.Contains(t, err.Error(), "Invalid tier")
}

func TestCreateCheckoutSendsNullAffiliate(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"checkout_url":"https://checkout.example/s"}`))
	})

	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		Tier:         types.PlanStarter,
		BillingCycle: types.BillingAnnual,
		SuccessURL:   "https://example.com/subscription/success",
		CancelURL:    "https://example.com/pricing",
	})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw["affiliate_code"]))
	assert.Equal(t, `"annual"`, string(raw["billing_cycle"]))
}

func TestCreateCheckoutRequiresURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Tier: types.PlanPro, BillingCycle: types.BillingMonthly})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestVerifyAffiliateCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, affiliateVerifyPath, r.URL.Path)
		switch r.URL.Query().Get("code") {
		case "SPRING":
			_, _ = w.Write([]byte(`{"valid":true,"discount_type":"percent","message":"20% off"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"valid":false}`))
		}
	})

	got, err := client.VerifyAffiliateCode(context.Background(), " SPRING ")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "percent", got.DiscountType)

	got, err = client.VerifyAffiliateCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, "Invalid or expired code", got.Message)

	_, err = client.VerifyAffiliateCode(context.Background(), "   ")
	assert.True(t, errors.IsType(err, errors.TypeInput))
}
