// Package cmd - quote command
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"seatquote/core/pricing"
	"seatquote/core/types"
	"seatquote/internal/errors"
	"seatquote/internal/logging"
)

var quoteOffline bool

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <plan> <seats>",
	Short: "Quote an enterprise seat purchase",
	Long: `Price a number of seats of a plan at its volume discount.

The payments API is asked first. If it cannot be reached or answers with
an error, the quote is computed from the local tier tables instead and
marked with source "local".

Examples:
  seatquote quote pro 30
  seatquote quote starter 5 --offline
  seatquote quote core 120 --format yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteOffline, "offline", false, "skip the payments API and use local tier tables")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	plan := types.PlanKey(args[0])
	seats, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Newf(errors.TypeInput, "seats must be an integer, got %q", args[1])
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	opts := []pricing.Option{pricing.WithLogger(logging.Logger)}
	if !quoteOffline {
		opts = append(opts, pricing.WithRemote(newPaymentsClient()))
	}
	resolver := pricing.NewResolver(c, opts...)

	res, err := resolver.Resolve(cmd.Context(), plan, seats)
	if err != nil {
		return err
	}
	return render(cmd, res)
}
