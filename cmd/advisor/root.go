package main

import (
	"fmt"
	"os"

	"github.com/productadvisor/backend/config"
	"github.com/productadvisor/backend/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// newRootCmd builds the advisor command tree. Subcommands other than version
// receive the loaded configuration through cfg.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:     "advisor",
		Short:   "Product advisor backend and CLI",
		Version: Version,
		Long: `
Product Advisor (` + Version + `)

Recommends catalog products for a free-text need, with an AI ranking when a
Gemini API key is configured and a keyword heuristic otherwise.

COMMANDS:
  serve       Run the HTTP API
  recommend   Rank products for a query
  products    Browse and filter the catalog
  favorites   Manage favorite products
  version     Display version information

Configuration is read from config.yaml, .env and ADVISOR_* environment variables.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = *loaded

			if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
				return err
			}
			// prices are plain JSON numbers on every output
			decimal.MarshalJSONWithoutQuotes = true
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Disable Cobra's automatic "completion" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("advisor {{.Version}}\n")

	rootCmd.AddCommand(
		newServeCmd(&cfg),
		newRecommendCmd(&cfg),
		newProductsCmd(&cfg),
		newFavoritesCmd(&cfg),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
