package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/match"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Medical-spa transaction reconciliation and analytics",
	Long:  "Scores reward/POS transaction pairs for reconciliation, assesses account churn risk, and quantifies practice ROI. Runs as a CLI or an HTTP API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		match.FillTables(&c.Match)
		if err := match.ValidateConfig(c.Match); err != nil {
			return fmt.Errorf("validate match config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
