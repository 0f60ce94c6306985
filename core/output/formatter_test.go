package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"seatquote/core/catalog"
	"seatquote/core/pricing"
	"seatquote/core/types"
	"seatquote/internal/errors"
)

func proThirtyResult(t *testing.T) pricing.Result {
	t.Helper()
	res, err := pricing.NewResolver(catalog.Default()).Local(types.PlanPro, 30)
	require.NoError(t, err)
	return res
}

func TestNewFormatter(t *testing.T) {
	for name, want := range map[string]Format{"": FormatTable, "table": FormatTable, "JSON": FormatJSON, "yaml": FormatYAML} {
		f, err := NewFormatter(name)
		require.NoError(t, err)
		assert.Equal(t, want, f.Format())
	}

	_, err := NewFormatter("html")
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12,798.00", Money(decimal.NewFromInt(12798), types.CurrencyUSD))
	assert.Equal(t, "$426.60", Money(decimal.RequireFromString("426.6"), types.CurrencyUSD))
	assert.Equal(t, "$0.00", Money(decimal.Zero, ""))
	assert.Equal(t, "1,066.50 EUR", Money(decimal.RequireFromString("1066.5"), "EUR"))
}

func TestTableRendersQuote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Render(&buf, proThirtyResult(t)))

	out := buf.String()
	assert.Contains(t, out, "tier50 (25-49 seats)")
	assert.Contains(t, out, "$426.60")
	assert.Contains(t, out, "$12,798.00")
	assert.Contains(t, out, "$1,066.50")
	assert.Contains(t, out, "You save:")
	assert.Contains(t, out, "local")
}

func TestTableOmitsSavingsWithoutDiscount(t *testing.T) {
	res, err := pricing.NewResolver(catalog.Default()).Local(types.PlanStarter, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Render(&buf, &res))
	assert.NotContains(t, buf.String(), "You save:")
	assert.Contains(t, buf.String(), "$1,026.00")
}

func TestTableRendersTiersWithBadges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Render(&buf, catalog.Default().Tiers()))

	out := buf.String()
	assert.Contains(t, out, "1-9 seats")
	assert.Contains(t, out, "60% off")
	assert.Contains(t, out, "POPULAR")
	assert.Contains(t, out, "BEST VALUE")
}

func TestTableRendersOffers(t *testing.T) {
	offers, err := pricing.Offers(catalog.Default(), types.BillingAnnual)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Render(&buf, offers))

	out := buf.String()
	assert.Contains(t, out, "PRICE/ANNUAL")
	assert.Contains(t, out, "PER MONTH")
	assert.Contains(t, out, "$711.00")
	assert.Contains(t, out, "$59.25")
	assert.Contains(t, out, "$341.28/seat/yr")
}

func TestTableFallsBackToFields(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		CheckoutURL string
		hidden      string
	}{CheckoutURL: "https://checkout.example/s", hidden: "x"}

	require.NoError(t, (&TableFormatter{}).Render(&buf, data))
	assert.Contains(t, buf.String(), "CheckoutURL:")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestJSONUsesWireFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Render(&buf, proThirtyResult(t)))

	var decoded struct {
		Source  string                 `json:"source"`
		Pricing map[string]interface{} `json:"pricing"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "local", decoded.Source)
	assert.Equal(t, "12798", decoded.Pricing["total_annual"])
	assert.Equal(t, "tier50", decoded.Pricing["tier"])
}

func TestYAMLRendersDecimalsAsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Render(&buf, proThirtyResult(t)))

	var decoded struct {
		Source  string                 `yaml:"source"`
		Pricing map[string]interface{} `yaml:"pricing"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "local", decoded.Source)
	assert.Equal(t, "426.6", decoded.Pricing["price_per_seat_annual"])
	assert.Equal(t, "12798", decoded.Pricing["total_annual"])
	assert.Equal(t, "pro", decoded.Pricing["plan"])
}
