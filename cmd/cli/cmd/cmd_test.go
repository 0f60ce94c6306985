package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a private HOME so no user config leaks in.
// Flag variables are package globals, so every call passes the flags it relies on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAYMENTS_API_URL", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "seatquote version")
}

func TestQuoteOffline(t *testing.T) {
	out, err := execute(t, "quote", "pro", "30", "--offline", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "local"`)
	assert.Contains(t, out, `"total_annual": "12798"`)
	assert.Contains(t, out, `"tier": "tier50"`)
}

func TestQuoteRemote(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pricing":{"tier_label":"10-24 seats","discount_percent":40,
			"price_per_seat_annual":252.72,"total_annual":3032.64,"total_monthly_equivalent":252.72,
			"savings_annual":2021.76,"base_price_per_seat":421.2}}`))
	}))
	defer upstream.Close()

	out, err := execute(t, "quote", "core", "12", "--offline=false", "--api-url", upstream.URL, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "remote"`)
	assert.Contains(t, out, `"tier": "tier40"`)
}

func TestQuoteRejectsSeatsOutOfRange(t *testing.T) {
	_, err := execute(t, "quote", "pro", "0", "--offline", "--format", "json")
	assert.Error(t, err)

	_, err = execute(t, "quote", "pro", "many", "--offline", "--format", "json")
	assert.Error(t, err)
}

func TestTiersTable(t *testing.T) {
	out, err := execute(t, "tiers", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "50+ seats")
	assert.Contains(t, out, "BEST VALUE")
}

func TestTierSeats(t *testing.T) {
	out, err := execute(t, "tiers", "seats", "tier40")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestPlansYAML(t *testing.T) {
	out, err := execute(t, "plans", "--billing-cycle", "annual", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "billing_cycle: annual")
	assert.Contains(t, out, "711")
}

func TestCheckoutEnterpriseValidatesLocally(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"checkout_url":"https://checkout.example/s"}`))
	}))
	defer upstream.Close()

	_, err := execute(t, "checkout", "enterprise", "--plan", "core", "--seats", "501", "--api-url", upstream.URL)
	assert.Error(t, err)
	assert.Equal(t, 0, calls)

	out, err := execute(t, "checkout", "enterprise", "--plan", "core", "--seats", "15", "--api-url", upstream.URL, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, out, "https://checkout.example/s")
}

func TestAffiliateVerifyUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	out, err := execute(t, "affiliate", "verify", "SPRING", "--api-url", url, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not verify code")
	assert.Contains(t, out, `"valid": false`)
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	t.Setenv("SEATQUOTE_HTTP_TIMEOUT", "0")

	_, err := execute(t, "quote", "pro", "30", "--offline", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds must be positive")
}

func TestCheckoutStandardRejectsMalformedAffiliateCode(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"checkout_url":"https://checkout.example/s"}`))
	}))
	defer upstream.Close()

	_, err := execute(t, "checkout", "standard", "--plan", "pro", "--affiliate", "AB;CD", "--api-url", upstream.URL)
	assert.Error(t, err)
	assert.Equal(t, 0, calls)

	_, err = execute(t, "affiliate", "verify", "AB;CD", "--api-url", upstream.URL)
	assert.Error(t, err)
	assert.Equal(t, 0, calls)
}
