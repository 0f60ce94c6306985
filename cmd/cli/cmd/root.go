// Package cmd provides the CLI commands for seatquote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seatquote/adapters/payments"
	"seatquote/core/catalog"
	"seatquote/core/output"
	"seatquote/internal/config"
	"seatquote/internal/logging"
)

// Version is stamped at build time with -ldflags "-X seatquote/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile      string
	envFile      string
	apiURL       string
	outputFormat string
	verbose      bool

	configErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "seatquote",
	Short: "Quote seat-based plans and start checkout sessions",
	Long: `seatquote prices individual and enterprise seat plans.

Enterprise quotes come from the payments API when it is reachable and
from the built-in volume tier tables when it is not.

Examples:
  seatquote plans --billing-cycle annual
  seatquote tiers
  seatquote quote pro 30
  seatquote quote core 12 --offline --format json
  seatquote checkout enterprise --plan core --seats 15
  seatquote affiliate verify SPRING`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seatquote/config.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "payments API base URL (overrides "+config.EnvPaymentsAPIURL+")")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
}

// initConfig runs before every command. Failures are held in configErr and
// reported by the root PersistentPreRunE so the command exits non-zero.
func initConfig() {
	configErr = nil
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		configErr = err
		return
	}
	if err := cfg.ApplyEnv(); err != nil {
		configErr = err
		return
	}
	if apiURL != "" {
		cfg.Payments.APIURL = apiURL
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		configErr = err
		return
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog returns the configured catalog file or the built-in one
func loadCatalog() (*catalog.Catalog, error) {
	cfg := config.Get().Catalog
	return catalog.Load(cfg.Path, cfg.Currency)
}

func newPaymentsClient() *payments.Client {
	cfg := config.Get()
	return payments.New(&payments.Config{
		BaseURL:   cfg.Payments.APIURL,
		Timeout:   cfg.Payments.Timeout(),
		UserAgent: cfg.Payments.UserAgent,
	})
}

// render writes data to the command's stdout in the selected format
func render(cmd *cobra.Command, data interface{}) error {
	format := outputFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	f, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), data)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "seatquote version %s\n", Version)
	},
}
