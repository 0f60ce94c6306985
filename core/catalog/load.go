package catalog

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"seatquote/core/types"
	"seatquote/internal/errors"
)

// fileSpec is the on-disk catalog layout. Prices are strings so that
// "853.20" survives without a float round trip; bare numbers are accepted too.
//
//	currency = "USD"
//
//	plan "pro" {
//	  name                = "Pro"
//	  base_price_per_seat = "853.20"
//	  cases_per_month     = 30
//	  features            = ["Priority support"]
//	}
//
//	tier "tier50" {
//	  label            = "50% OFF"
//	  min_seats        = 25
//	  max_seats        = 49
//	  discount_percent = 50
//	}
type fileSpec struct {
	Currency string     `hcl:"currency,optional"`
	Plans    []planSpec `hcl:"plan,block"`
	Tiers    []tierSpec `hcl:"tier,block"`
}

type planSpec struct {
	Key              string   `hcl:"key,label"`
	Name             string   `hcl:"name"`
	Description      string   `hcl:"description,optional"`
	Tagline          string   `hcl:"tagline,optional"`
	Features         []string `hcl:"features,optional"`
	BasePricePerSeat string   `hcl:"base_price_per_seat"`
	CasesPerMonth    int      `hcl:"cases_per_month"`
	MonthlyPrice     string   `hcl:"monthly_price,optional"`
	YearlyPrice      string   `hcl:"yearly_price,optional"`
	Popular          bool     `hcl:"popular,optional"`
}

type tierSpec struct {
	ID              string `hcl:"id,label"`
	Label           string `hcl:"label"`
	Range           string `hcl:"range,optional"`
	MinSeats        int    `hcl:"min_seats"`
	MaxSeats        int    `hcl:"max_seats"`
	DiscountPercent string `hcl:"discount_percent"`
	Popular         bool   `hcl:"popular,optional"`
	BestValue       bool   `hcl:"best_value,optional"`
}

// Load returns the catalog at path, or the built-in tables when path is
// empty. currency applies to the built-in tables and to files that do not
// declare their own; empty means USD.
func Load(path string, currency types.Currency) (*Catalog, error) {
	if currency == "" {
		currency = types.CurrencyUSD
	}
	if path == "" {
		return New(currency, defaultPlans(), defaultTiers())
	}

	var spec fileSpec
	if err := hclsimple.DecodeFile(path, nil, &spec); err != nil {
		return nil, errors.Parsing("decode catalog "+path, err)
	}
	if spec.Currency == "" {
		spec.Currency = string(currency)
	}
	return spec.build()
}

// LoadFile reads a catalog from an .hcl or HCL-JSON .json file. A file
// without a currency attribute is priced in USD.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.Input("catalog path is required")
	}
	return Load(path, types.CurrencyUSD)
}

// Parse decodes catalog source. The filename extension selects the syntax.
func Parse(filename string, src []byte) (*Catalog, error) {
	var spec fileSpec
	if err := hclsimple.Decode(filename, src, nil, &spec); err != nil {
		return nil, errors.Parsing("decode catalog "+filename, err)
	}
	return spec.build()
}

func (s fileSpec) build() (*Catalog, error) {
	currency := types.CurrencyUSD
	if s.Currency != "" {
		currency = types.Currency(s.Currency)
	}

	plans := make([]types.Plan, 0, len(s.Plans))
	for _, p := range s.Plans {
		base, err := parseAmount(p.BasePricePerSeat)
		if err != nil {
			return nil, errors.Parsing("plan "+p.Key+": base_price_per_seat", err)
		}
		monthly, err := parseAmount(p.MonthlyPrice)
		if err != nil {
			return nil, errors.Parsing("plan "+p.Key+": monthly_price", err)
		}
		yearly, err := parseAmount(p.YearlyPrice)
		if err != nil {
			return nil, errors.Parsing("plan "+p.Key+": yearly_price", err)
		}
		plans = append(plans, types.Plan{
			Key:              types.PlanKey(p.Key),
			Name:             p.Name,
			Description:      p.Description,
			Tagline:          p.Tagline,
			Features:         p.Features,
			BasePricePerSeat: base,
			CasesPerMonth:    p.CasesPerMonth,
			MonthlyPrice:     monthly,
			YearlyPrice:      yearly,
			Popular:          p.Popular,
		})
	}

	tiers := make([]types.VolumeTier, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		discount, err := parseAmount(t.DiscountPercent)
		if err != nil {
			return nil, errors.Parsing("tier "+t.ID+": discount_percent", err)
		}
		tiers = append(tiers, types.VolumeTier{
			ID:              types.TierID(t.ID),
			Label:           t.Label,
			Range:           t.Range,
			MinSeats:        t.MinSeats,
			MaxSeats:        t.MaxSeats,
			DiscountPercent: discount,
			Popular:         t.Popular,
			BestValue:       t.BestValue,
		})
	}

	return New(currency, plans, tiers)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
