package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"seatquote/adapters/payments"
	"seatquote/core/pricing"
	"seatquote/core/referral"
	"seatquote/core/types"
	"seatquote/internal/errors"
	"seatquote/internal/metrics"
)

// AffiliateCookie remembers the visitor's referral code between pages
const AffiliateCookie = "affiliate_code"

const affiliateCookieTTL = 30 * 24 * time.Hour

// Checkout return paths on the public site
const (
	enterpriseSuccessPath = "/enterprise/success"
	enterpriseCancelPath  = "/enterprise"
	standardSuccessPath   = "/subscription/success"
	standardCancelPath    = "/pricing"
)

// verifyFailedMessage is returned when the payments API cannot be reached
const verifyFailedMessage = "Could not verify code"

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"service":     "seatquote",
		"api_version": "v1",
	}, http.StatusOK)
}

// handlePlans handles GET /api/plans?billing_cycle=monthly|annual.
// A referral code in the query is remembered in a cookie for checkout.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	cycle := types.BillingCycle(r.URL.Query().Get("billing_cycle"))
	if cycle == "" {
		cycle = types.BillingMonthly
	}

	offers, err := pricing.Offers(s.resolver.Catalog(), cycle)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	code, fromQuery := referral.Resolve(r.URL.Query(), referral.PricingKeys, storedAffiliate(r))
	if fromQuery {
		setAffiliateCookie(w, code)
	}

	s.writeJSON(w, PlansResponse{
		BillingCycle:  cycle,
		Plans:         offers,
		AffiliateCode: code,
	}, http.StatusOK)
}

// handleTiers handles GET /api/enterprise/tiers
func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	c := s.resolver.Catalog()
	s.writeJSON(w, TiersResponse{
		Tiers:    c.Tiers(),
		MinSeats: c.MinSeats(),
		MaxSeats: c.MaxSeats(),
	}, http.StatusOK)
}

// handleTierSeats handles GET /api/enterprise/tiers/{id}/seats
func (s *Server) handleTierSeats(w http.ResponseWriter, r *http.Request) {
	id := types.TierID(chi.URLParam(r, "id"))
	seats, err := pricing.SnapSeats(s.resolver.Catalog(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, TierSeatsResponse{Tier: id, Seats: seats}, http.StatusOK)
}

// handleQuote handles GET /api/enterprise/quote?plan=&seats=
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plan := types.PlanKey(q.Get("plan"))
	seats, err := strconv.Atoi(q.Get("seats"))
	if err != nil {
		s.writeDomainError(w, errors.Newf(errors.TypeInput, "seats must be an integer, got %q", q.Get("seats")))
		return
	}

	res, err := s.resolver.Resolve(r.Context(), plan, seats)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, res, http.StatusOK)
}

// handleEnterpriseCheckout handles POST /api/enterprise/checkout
func (s *Server) handleEnterpriseCheckout(w http.ResponseWriter, r *http.Request) {
	var req EnterpriseCheckoutRequest
	if !s.decode(w, r, &req) {
		metrics.CheckoutSessionsTotal.WithLabelValues("enterprise", "rejected").Inc()
		return
	}

	resp, err := s.payments.CreateEnterpriseCheckout(r.Context(), payments.EnterpriseCheckoutRequest{
		Tier:       req.Plan,
		Quantity:   req.Seats,
		SuccessURL: s.site.URL(enterpriseSuccessPath),
		CancelURL:  s.site.URL(enterpriseCancelPath),
	})
	if err != nil {
		s.checkoutFailed(w, r, "enterprise", err)
		return
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("enterprise", "created").Inc()
	s.writeJSON(w, CheckoutResponse{CheckoutURL: resp.CheckoutURL}, http.StatusOK)
}

// handleCheckout handles POST /api/checkout. The affiliate code comes from
// the body or, failing that, the affiliate cookie.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !s.decode(w, r, &req) {
		metrics.CheckoutSessionsTotal.WithLabelValues("standard", "rejected").Inc()
		return
	}

	upstream := payments.CheckoutRequest{
		Tier:         req.Plan,
		BillingCycle: req.BillingCycle,
		SuccessURL:   s.site.URL(standardSuccessPath),
		CancelURL:    s.site.URL(standardCancelPath),
	}
	code := referral.Normalize(req.AffiliateCode)
	if code == "" {
		code = storedAffiliate(r)
	}
	if code != "" {
		upstream.AffiliateCode = &code
	}

	resp, err := s.payments.CreateCheckout(r.Context(), upstream)
	if err != nil {
		s.checkoutFailed(w, r, "standard", err)
		return
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("standard", "created").Inc()
	s.writeJSON(w, CheckoutResponse{CheckoutURL: resp.CheckoutURL}, http.StatusOK)
}

func (s *Server) checkoutFailed(w http.ResponseWriter, r *http.Request, kind string, err error) {
	metrics.CheckoutSessionsTotal.WithLabelValues(kind, "failed").Inc()
	s.logger.Warn("checkout session failed",
		zap.String("kind", kind),
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)

	// every failure of the payments call is the gateway's fault from the caller's view
	if !errors.IsType(err, errors.TypeUpstream) && !errors.IsType(err, errors.TypeNetwork) {
		err = errors.Wrap(errors.TypeUpstream, "payments API returned an unusable response", err)
	}
	s.writeDomainError(w, err)
}

// handleEnterpriseSuccess handles GET /api/enterprise/success?session_id=,
// the return page of an enterprise checkout
func (s *Server) handleEnterpriseSuccess(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, SuccessResponse{SessionID: r.URL.Query().Get("session_id")}, http.StatusOK)
}

// handleSubscriptionSuccess handles GET /api/subscription/success?session_id=.
// A completed purchase consumes the remembered affiliate code.
func (s *Server) handleSubscriptionSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	clearAffiliateCookie(w)
	s.logger.Info("subscription checkout completed",
		zap.String("session_id", sessionID),
		zap.Bool("had_affiliate", storedAffiliate(r) != ""),
	)
	s.writeJSON(w, SuccessResponse{SessionID: sessionID, AffiliateCleared: true}, http.StatusOK)
}

// handleVerifyAffiliate handles GET /api/affiliate/verify?code=.
// Valid codes are remembered in the affiliate cookie.
func (s *Server) handleVerifyAffiliate(w http.ResponseWriter, r *http.Request) {
	code := referral.FromQuery(r.URL.Query(), referral.AffiliateKeys...)
	if code == "" {
		s.writeDomainError(w, errors.Input("code is required"))
		return
	}
	if !referral.Valid(code) {
		s.writeDomainError(w, errors.Newf(errors.TypeInput,
			"code must be at most %d letters, digits, '_' or '-'", referral.MaxLength))
		return
	}

	result, err := s.payments.VerifyAffiliateCode(r.Context(), code)
	if err != nil {
		metrics.AffiliateVerificationsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("affiliate verification failed", zap.String("code", code), zap.Error(err))
		s.writeJSON(w, AffiliateResponse{Code: code, Valid: false, Message: verifyFailedMessage}, http.StatusOK)
		return
	}

	if result.Valid {
		metrics.AffiliateVerificationsTotal.WithLabelValues("valid").Inc()
		setAffiliateCookie(w, code)
	} else {
		metrics.AffiliateVerificationsTotal.WithLabelValues("invalid").Inc()
	}

	s.writeJSON(w, AffiliateResponse{
		Code:         code,
		Valid:        result.Valid,
		DiscountType: result.DiscountType,
		Message:      result.Message,
	}, http.StatusOK)
}

// storedAffiliate returns the remembered code, ignoring a cookie that was
// not written by setAffiliateCookie
func storedAffiliate(r *http.Request) string {
	c, err := r.Cookie(AffiliateCookie)
	if err != nil {
		return ""
	}
	code := referral.Normalize(c.Value)
	if !referral.Valid(code) {
		return ""
	}
	return code
}

func setAffiliateCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AffiliateCookie,
		Value:    code,
		Path:     "/",
		MaxAge:   int(affiliateCookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAffiliateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AffiliateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
