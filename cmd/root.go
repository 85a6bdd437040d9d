package cmd

import (
	"fmt"
	"os"

	"price-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "price-manager",
	Short: "Marketplace Price Reconciliation Service",
	Long: `Price Manager ingests a marketplace XML price feed, reconciles it
against the internal product catalog and maintains an append-only
price history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format with "debug" level gives ISO8601 timestamps,
		// which reads better for a CLI tool than epoch seconds.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
