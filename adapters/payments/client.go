// Package payments is the HTTP client for the remote payments API.
// Checkout sessions, affiliate verification and authoritative enterprise
// pricing all live on that service; this package only consumes its contract.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"seatquote/core/types"
	"seatquote/internal/errors"
	"seatquote/internal/logging"
)

const (
	enterprisePricingPath  = "/api/payments/enterprise/pricing/"
	enterpriseCheckoutPath = "/api/payments/enterprise/checkout/"
	checkoutPath           = "/api/payments/checkout/"
	affiliateVerifyPath    = "/api/payments/affiliate/verify/"

	maxResponseBytes = 1 << 20
)

// Config configures the payments client
type Config struct {
	// BaseURL is the payments API origin
	BaseURL string `json:"base_url"`

	// Timeout bounds every request
	Timeout time.Duration `json:"timeout"`

	// UserAgent is sent on every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns production defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://api.ersimulator.com",
		Timeout:   10 * time.Second,
		UserAgent: "seatquote/1.0",
	}
}

// Client calls the payments API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// New creates a payments client
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewWithHTTPClient creates a payments client over an existing http.Client
func NewWithHTTPClient(cfg *Config, hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		logger:     logging.Logger.Named("payments"),
	}
}

// EnterprisePricing asks the payments API to price seats of plan.
// It satisfies pricing.RemoteSource.
func (c *Client) EnterprisePricing(ctx context.Context, plan types.PlanKey, seats int) (types.Quote, error) {
	query := url.Values{
		"tier":     {string(plan)},
		"quantity": {strconv.Itoa(seats)},
	}

	var resp EnterprisePricingResponse
	if err := c.do(ctx, http.MethodGet, enterprisePricingPath, query, nil, &resp); err != nil {
		return types.Quote{}, err
	}
	if resp.Pricing == nil {
		return types.Quote{}, errors.Parsing("enterprise pricing response", errors.New(errors.TypeParsing, "missing pricing object"))
	}
	if field := resp.Pricing.missing(); field != "" {
		return types.Quote{}, errors.Parsing("enterprise pricing response", errors.Newf(errors.TypeParsing, "missing %s", field))
	}
	return resp.Pricing.quote(), nil
}

// CreateEnterpriseCheckout starts a seat-based checkout session
func (c *Client) CreateEnterpriseCheckout(ctx context.Context, req EnterpriseCheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, enterpriseCheckoutPath, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.CheckoutURL == "" {
		return nil, errors.New(errors.TypeParsing, "checkout response has no checkout_url")
	}
	return &resp, nil
}

// CreateCheckout starts an individual subscription checkout session
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, checkoutPath, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.CheckoutURL == "" {
		return nil, errors.New(errors.TypeParsing, "checkout response has no checkout_url")
	}
	return &resp, nil
}

// VerifyAffiliateCode checks a referral code. A non-success answer from the
// API is reported as an invalid code, not as an error.
func (c *Client) VerifyAffiliateCode(ctx context.Context, code string) (*AffiliateVerification, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.Input("affiliate code is required")
	}

	var resp AffiliateVerification
	err := c.do(ctx, http.MethodGet, affiliateVerifyPath, url.Values{"code": {code}}, nil, &resp)
	if errors.IsType(err, errors.TypeUpstream) {
		return &AffiliateVerification{Valid: false, Message: "Invalid or expired code"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Internal("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Network(method+" "+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Network("read response "+path, err)
	}

	c.logger.Debug("payments API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &payload) == nil && payload.text() != "" {
			msg = payload.text()
		}
		return errors.Upstream(resp.StatusCode, msg).WithContext("path", path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Parsing("decode response "+path, err)
	}
	return nil
}
