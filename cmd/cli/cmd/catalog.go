// Package cmd - plan and tier listing commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"seatquote/core/pricing"
	"seatquote/core/types"
)

var billingCycle string

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List plans with individual prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		offers, err := pricing.Offers(c, types.BillingCycle(billingCycle))
		if err != nil {
			return err
		}
		return render(cmd, offers)
	},
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List enterprise volume discount tiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return render(cmd, c.Tiers())
	},
}

var tierSeatsCmd = &cobra.Command{
	Use:   "seats <tier-id>",
	Short: "Print the seat count selected when a tier is picked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		seats, err := pricing.SnapSeats(c, types.TierID(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), seats)
		return nil
	},
}

func init() {
	plansCmd.Flags().StringVarP(&billingCycle, "billing-cycle", "b", string(types.BillingMonthly), "billing cycle (monthly, annual)")
	tiersCmd.AddCommand(tierSeatsCmd)

	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(tiersCmd)
}
