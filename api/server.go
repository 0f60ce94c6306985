// Package api - HTTP API for plan listings, enterprise quotes and checkout.
// The API validates input and serializes output. Pricing logic lives in
// core/pricing and payment sessions live on the remote payments API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"seatquote/adapters/payments"
	"seatquote/core/pricing"
	"seatquote/internal/config"
	"seatquote/internal/errors"
	"seatquote/internal/logging"
)

const maxBodyBytes = 64 << 10

// Payments is the subset of the payments API the server proxies to
type Payments interface {
	CreateEnterpriseCheckout(ctx context.Context, req payments.EnterpriseCheckoutRequest) (*payments.CheckoutResponse, error)
	CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (*payments.CheckoutResponse, error)
	VerifyAffiliateCode(ctx context.Context, code string) (*payments.AffiliateVerification, error)
}

// Options wires the server's dependencies
type Options struct {
	Version  string
	Resolver *pricing.Resolver
	Payments Payments
	Config   *config.Config
	Logger   *zap.Logger
}

// Server is the API server
type Server struct {
	router    chi.Router
	version   string
	resolver  *pricing.Resolver
	payments  Payments
	site      config.SiteConfig
	validator *Validator
	limiter   *RateLimiter
	logger    *zap.Logger
	started   time.Time
}

// NewServer creates the API server
func NewServer(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Logger.Named("api")
	}

	s := &Server{
		router:    chi.NewRouter(),
		version:   opts.Version,
		resolver:  opts.Resolver,
		payments:  opts.Payments,
		site:      cfg.Site,
		validator: NewValidator(opts.Resolver.Catalog()),
		logger:    logger,
		started:   time.Now(),
	}
	if cfg.Server.RateLimit.Enabled {
		s.limiter = NewRateLimiter(cfg.Server.RateLimit, logger)
	}

	s.routes(cfg.Server.AllowedOrigins)
	return s
}

// routes registers all API routes
func (s *Server) routes(allowedOrigins []string) {
	r := s.router
	r.Use(chimw.RealIP)
	r.Use(chimw.CleanPath)
	r.Use(requestIDMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(corsMiddleware(allowedOrigins))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/plans", s.handlePlans)
		r.Get("/affiliate/verify", s.handleVerifyAffiliate)

		r.Route("/enterprise", func(r chi.Router) {
			r.Get("/tiers", s.handleTiers)
			r.Get("/tiers/{id}/seats", s.handleTierSeats)
			r.Get("/quote", s.handleQuote)
			r.Get("/success", s.handleEnterpriseSuccess)
			r.With(s.rateLimit).Post("/checkout", s.handleEnterpriseCheckout)
		})

		r.With(s.rateLimit).Post("/checkout", s.handleCheckout)
		r.Get("/subscription/success", s.handleSubscriptionSuccess)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return s.limiter.Middleware(s)(next)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, ErrorBody{Error: ErrorDetail{Code: code, Message: message}}, status)
}

// writeDomainError maps an internal/errors type to a status code
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	errType := errors.TypeOf(err)
	message := err.Error()
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	status := http.StatusInternalServerError
	switch errType {
	case errors.TypeInput, errors.TypeParsing:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeUpstream, errors.TypeNetwork:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	}

	s.writeError(w, status, string(errType), message)
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	body := ErrorBody{Error: ErrorDetail{Code: string(errors.TypeInput), Message: err.Error()}}
	if fields, ok := err.(ValidationErrors); ok {
		body.Error.Fields = fields
		body.Error.Message = "validation failed"
	}
	s.writeJSON(w, body, http.StatusBadRequest)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, string(errors.TypeInput),
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, http.StatusBadRequest, string(errors.TypeInput), "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validator.Validate(v); err != nil {
		s.writeValidationError(w, err)
		return false
	}
	return true
}
