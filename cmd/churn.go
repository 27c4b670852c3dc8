package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/medspasync/reconcile/internal/churn"
	"github.com/medspasync/reconcile/internal/model"
)

var churnFile string

var churnCmd = &cobra.Command{
	Use:   "churn",
	Short: "Assess churn risk for an account",
	Long: `Assess churn risk from an account-activity JSON file. Absent fields
fall back to neutral defaults.

Example:
  reconcile churn --file account.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(churnFile)
		if err != nil {
			return eris.Wrap(err, "read account file")
		}

		var acct model.AccountActivity
		if err := json.Unmarshal(data, &acct); err != nil {
			return eris.Wrap(err, "parse account file")
		}

		assessment := churn.NewPredictor(cfg.Churn).Assess(acct)
		return printJSON(cmd, assessment)
	},
}

func init() {
	churnCmd.Flags().StringVar(&churnFile, "file", "", "JSON file with account activity (required)")
	_ = churnCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(churnCmd)
}
