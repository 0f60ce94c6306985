// Package output renders quotes, tier tables and plan listings for the CLI.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"seatquote/core/pricing"
	"seatquote/core/types"
	"seatquote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable aligned table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes data to w
	Render(w io.Writer, data interface{}) error
}

// NewFormatter returns the formatter for name. Empty means table.
func NewFormatter(name string) (Formatter, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatTable:
		return &TableFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q (want table, json or yaml)", name)
	}
}

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// TableFormatter writes aligned text tables
type TableFormatter struct{}

// Format returns FormatTable
func (f *TableFormatter) Format() Format { return FormatTable }

// Render writes data as a table
func (f *TableFormatter) Render(w io.Writer, data interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch v := data.(type) {
	case pricing.Result:
		renderResult(tw, v)
	case *pricing.Result:
		renderResult(tw, *v)
	case []types.VolumeTier:
		renderTiers(tw, v)
	case []types.PlanOffer:
		renderOffers(tw, v)
	default:
		renderFields(tw, data)
	}

	return tw.Flush()
}

func renderResult(w io.Writer, r pricing.Result) {
	q := r.Quote
	fmt.Fprintf(w, "Plan:\t%s\n", q.Plan)
	fmt.Fprintf(w, "Seats:\t%d\n", q.Seats)
	fmt.Fprintf(w, "Tier:\t%s (%s)\n", q.Tier, q.TierLabel)
	fmt.Fprintf(w, "Discount:\t%s%%\n", q.DiscountPercent.String())
	fmt.Fprintf(w, "Base price per seat:\t%s\n", Money(q.BasePricePerSeat, q.Currency))
	fmt.Fprintf(w, "Price per seat (annual):\t%s\n", Money(q.PricePerSeat, q.Currency))
	fmt.Fprintf(w, "Total (annual):\t%s\n", Money(q.TotalAnnual, q.Currency))
	fmt.Fprintf(w, "Monthly equivalent:\t%s\n", Money(q.MonthlyEquivalent, q.Currency))
	if q.SavingsAnnual.IsPositive() {
		fmt.Fprintf(w, "You save:\t%s\n", Money(q.SavingsAnnual, q.Currency))
	}

	source := string(r.Source)
	if r.RemoteErr != nil {
		source += " " + warnStyle.Render("(payments API unavailable)")
	}
	fmt.Fprintf(w, "Source:\t%s\n", dimStyle.Render(source))
}

func renderTiers(w io.Writer, tiers []types.VolumeTier) {
	if len(tiers) == 0 {
		fmt.Fprintln(w, "No tiers configured.")
		return
	}
	fmt.Fprintln(w, "ID\tSEATS\tDISCOUNT\t")
	for _, t := range tiers {
		discount := "-"
		if t.DiscountPercent.IsPositive() {
			discount = t.DiscountPercent.String() + "% off"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Range, discount, tierBadge(t))
	}
}

func tierBadge(t types.VolumeTier) string {
	switch {
	case t.BestValue:
		return badgeStyle.Render("BEST VALUE")
	case t.Popular:
		return badgeStyle.Render("POPULAR")
	default:
		return ""
	}
}

func renderOffers(w io.Writer, offers []types.PlanOffer) {
	if len(offers) == 0 {
		fmt.Fprintln(w, "No plans configured.")
		return
	}
	fmt.Fprintf(w, "PLAN\tNAME\tPRICE/%s\tPER MONTH\tCASES/MO\tENTERPRISE FROM\t\n", strings.ToUpper(string(offers[0].BillingCycle)))
	for _, o := range offers {
		badge := ""
		if o.Popular {
			badge = badgeStyle.Render("POPULAR")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s/seat/yr\t%s\n",
			o.Key, o.Name, Money(o.Price, o.Currency), Money(o.PricePerMonth, o.Currency),
			o.CasesPerMonth, Money(o.EnterpriseFrom, o.Currency), badge)
	}
}

// renderFields prints exported struct fields as "Name: value" rows
func renderFields(w io.Writer, data interface{}) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		fmt.Fprintln(w, data)
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		fmt.Fprintf(w, "%s:\t%v\n", t.Field(i).Name, v.Field(i).Interface())
	}
}

// Money formats an amount with thousands separators and two decimals
func Money(amount decimal.Decimal, currency types.Currency) string {
	s := humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
	if currency == types.CurrencyUSD || currency == "" {
		return "$" + s
	}
	return s + " " + string(currency)
}

// JSONFormatter writes indented JSON
type JSONFormatter struct{}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes data as JSON
func (f *JSONFormatter) Render(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// YAMLFormatter writes YAML
type YAMLFormatter struct{}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format { return FormatYAML }

// Render writes data as YAML
func (f *YAMLFormatter) Render(w io.Writer, data interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
