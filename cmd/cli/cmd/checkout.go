// Package cmd - checkout and affiliate commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"seatquote/adapters/payments"
	"seatquote/core/pricing"
	"seatquote/core/referral"
	"seatquote/core/types"
	"seatquote/internal/config"
	"seatquote/internal/errors"
)

var (
	checkoutPlan      string
	checkoutSeats     int
	checkoutCycle     string
	checkoutAffiliate string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Create a hosted checkout session",
	Long: `Create a checkout session on the payments API and print its URL.

Input is validated locally before any request is sent.`,
}

var checkoutEnterpriseCmd = &cobra.Command{
	Use:   "enterprise",
	Short: "Checkout seats of a plan at the volume discount",
	Args:  cobra.NoArgs,
	RunE:  runEnterpriseCheckout,
}

var checkoutStandardCmd = &cobra.Command{
	Use:   "standard",
	Short: "Checkout an individual subscription",
	Args:  cobra.NoArgs,
	RunE:  runStandardCheckout,
}

var affiliateCmd = &cobra.Command{
	Use:   "affiliate",
	Short: "Affiliate code tools",
}

var affiliateVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Check whether an affiliate code is valid",
	Args:  cobra.ExactArgs(1),
	RunE:  runAffiliateVerify,
}

func init() {
	checkoutEnterpriseCmd.Flags().StringVar(&checkoutPlan, "plan", "", "plan key (starter, core, pro) [REQUIRED]")
	checkoutEnterpriseCmd.Flags().IntVar(&checkoutSeats, "seats", 0, "number of seats [REQUIRED]")
	_ = checkoutEnterpriseCmd.MarkFlagRequired("plan")
	_ = checkoutEnterpriseCmd.MarkFlagRequired("seats")

	checkoutStandardCmd.Flags().StringVar(&checkoutPlan, "plan", "", "plan key (starter, core, pro) [REQUIRED]")
	checkoutStandardCmd.Flags().StringVarP(&checkoutCycle, "billing-cycle", "b", string(types.BillingMonthly), "billing cycle (monthly, annual)")
	checkoutStandardCmd.Flags().StringVar(&checkoutAffiliate, "affiliate", "", "affiliate code")
	_ = checkoutStandardCmd.MarkFlagRequired("plan")

	checkoutCmd.AddCommand(checkoutEnterpriseCmd)
	checkoutCmd.AddCommand(checkoutStandardCmd)
	affiliateCmd.AddCommand(affiliateVerifyCmd)

	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(affiliateCmd)
}

func runEnterpriseCheckout(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	plan := types.PlanKey(checkoutPlan)
	if _, err := c.Plan(plan); err != nil {
		return err
	}
	if err := pricing.ValidateSeats(checkoutSeats, c.MinSeats(), c.MaxSeats()); err != nil {
		return err
	}

	site := config.Get().Site
	resp, err := newPaymentsClient().CreateEnterpriseCheckout(cmd.Context(), payments.EnterpriseCheckoutRequest{
		Tier:       plan,
		Quantity:   checkoutSeats,
		SuccessURL: site.URL("/enterprise/success"),
		CancelURL:  site.URL("/enterprise"),
	})
	if err != nil {
		return err
	}
	return render(cmd, resp)
}

func runStandardCheckout(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	plan := types.PlanKey(checkoutPlan)
	if _, err := c.Plan(plan); err != nil {
		return err
	}
	cycle := types.BillingCycle(checkoutCycle)
	if !cycle.Valid() {
		return errors.Newf(errors.TypeInput, "billing cycle must be monthly or annual, got %q", checkoutCycle)
	}

	site := config.Get().Site
	req := payments.CheckoutRequest{
		Tier:         plan,
		BillingCycle: cycle,
		SuccessURL:   site.URL("/subscription/success"),
		CancelURL:    site.URL("/pricing"),
	}
	if code := referral.Normalize(checkoutAffiliate); code != "" {
		if !referral.Valid(code) {
			return errors.Newf(errors.TypeInput, "affiliate code must be at most %d letters, digits, '_' or '-'", referral.MaxLength)
		}
		req.AffiliateCode = &code
	}

	resp, err := newPaymentsClient().CreateCheckout(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd, resp)
}

func runAffiliateVerify(cmd *cobra.Command, args []string) error {
	code := referral.Normalize(args[0])
	if code != "" && !referral.Valid(code) {
		return errors.Newf(errors.TypeInput, "affiliate code must be at most %d letters, digits, '_' or '-'", referral.MaxLength)
	}
	result, err := newPaymentsClient().VerifyAffiliateCode(cmd.Context(), code)
	if errors.IsType(err, errors.TypeInput) {
		return err
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not verify code:", err)
		result = &payments.AffiliateVerification{Valid: false, Message: "Could not verify code"}
	}
	return render(cmd, result)
}
