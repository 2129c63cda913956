package main

import (
	"fmt"
	"os"

	"github.com/nikolayk812/hgshop/internal/config"
	"github.com/nikolayk812/hgshop/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	cfg = config.Load()

	root := &cobra.Command{
		Use:   "hgshop",
		Short: "HarvestGENESIS storefront",
		Long: `hgshop serves the HarvestGENESIS t-shirt storefront: a product grid,
a per-visitor cart and a quote request form.

Configuration comes from the environment. Flags override it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = telemetry.NewLogger(cfg.Log.Level, cfg.Log.Environment)
			if err != nil {
				return fmt.Errorf("telemetry.NewLogger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.Shop.CatalogPath, "catalog", cfg.Shop.CatalogPath, "catalog YAML file (embedded catalog when empty)")

	root.AddCommand(newServeCmd(), newCatalogCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
