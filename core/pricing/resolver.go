package pricing

import (
	"context"

	"go.uber.org/zap"

	"seatquote/core/catalog"
	"seatquote/core/types"
	"seatquote/internal/errors"
	"seatquote/internal/logging"
	"seatquote/internal/metrics"
)

// Source names the branch that produced a quote
type Source string

const (
	// SourceRemote means the payments API priced the request
	SourceRemote Source = "remote"

	// SourceLocal means the quote was computed from the catalog tables
	SourceLocal Source = "local"
)

// RemoteSource prices an enterprise request on the payments API.
// Implementations fill the price fields of the quote; the resolver sets
// plan, seats, tier and currency.
type RemoteSource interface {
	EnterprisePricing(ctx context.Context, plan types.PlanKey, seats int) (types.Quote, error)
}

// Result is the outcome of Resolve. Exactly one branch produced Quote.
type Result struct {
	Source Source      `json:"source" yaml:"source"`
	Quote  types.Quote `json:"pricing" yaml:"pricing"`

	// RemoteErr is why the remote branch was abandoned. It is nil for remote
	// results and for local results when no remote source is configured.
	RemoteErr error `json:"-" yaml:"-"`
}

// FromRemote reports whether the payments API produced the quote
func (r Result) FromRemote() bool {
	return r.Source == SourceRemote
}

// Resolver maps (plan, seats) to a quote. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
	remote  RemoteSource
	logger  *zap.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithRemote sets the remote pricing source tried before the local tables
func WithRemote(src RemoteSource) Option {
	return func(r *Resolver) {
		r.remote = src
	}
}

// WithLogger overrides the global logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver over c
func NewResolver(c *catalog.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: c,
		logger:  logging.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the tables the resolver prices from
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Resolve validates the input, asks the remote source and falls back to the
// local tables when the remote call fails for any reason. Input errors are
// returned before any network call; remote errors never are.
func (r *Resolver) Resolve(ctx context.Context, key types.PlanKey, seats int) (Result, error) {
	plan, tier, err := r.prepare(key, seats)
	if err != nil {
		metrics.QuotesRejected.WithLabelValues(string(errors.TypeOf(err))).Inc()
		return Result{}, err
	}

	if r.remote == nil {
		return r.local(plan, tier, seats, nil), nil
	}

	quote, err := r.remote.EnterprisePricing(ctx, key, seats)
	if err != nil {
		metrics.RemotePricingFailures.WithLabelValues(string(errors.TypeOf(err))).Inc()
		r.logger.Warn("remote pricing unavailable, using local tables",
			zap.String("plan", string(key)),
			zap.Int("seats", seats),
			zap.Error(err),
		)
		return r.local(plan, tier, seats, err), nil
	}

	// The remote payload carries no tier id; the local tier is the one the
	// seat count falls in.
	quote.Plan = key
	quote.Seats = seats
	quote.Tier = tier.ID
	quote.Currency = r.catalog.Currency()

	metrics.QuotesTotal.WithLabelValues(string(SourceRemote)).Inc()
	return Result{Source: SourceRemote, Quote: quote}, nil
}

// Local computes the quote from the catalog tables without any network call
func (r *Resolver) Local(key types.PlanKey, seats int) (Result, error) {
	plan, tier, err := r.prepare(key, seats)
	if err != nil {
		metrics.QuotesRejected.WithLabelValues(string(errors.TypeOf(err))).Inc()
		return Result{}, err
	}
	return r.local(plan, tier, seats, nil), nil
}

func (r *Resolver) local(plan types.Plan, tier types.VolumeTier, seats int, remoteErr error) Result {
	metrics.QuotesTotal.WithLabelValues(string(SourceLocal)).Inc()
	return Result{
		Source:    SourceLocal,
		Quote:     ComputeQuote(plan, tier, seats, r.catalog.Currency()),
		RemoteErr: remoteErr,
	}
}

func (r *Resolver) prepare(key types.PlanKey, seats int) (types.Plan, types.VolumeTier, error) {
	if err := ValidateSeats(seats, r.catalog.MinSeats(), r.catalog.MaxSeats()); err != nil {
		return types.Plan{}, types.VolumeTier{}, err
	}
	plan, err := r.catalog.Plan(key)
	if err != nil {
		return types.Plan{}, types.VolumeTier{}, err
	}
	tier, err := ResolveTier(r.catalog.Tiers(), seats)
	if err != nil {
		return types.Plan{}, types.VolumeTier{}, err
	}
	return plan, tier, nil
}
