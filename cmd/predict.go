package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/medspasync/reconcile/internal/match"
	"github.com/medspasync/reconcile/internal/model"
)

var (
	predictFile      string
	predictThreshold float64
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score a single reward/POS transaction pair",
	Long: `Score one transaction pair from a JSON file containing
{"reward_transaction": {...}, "pos_transaction": {...}}.

Each record needs customer_name, service, amount, and date.

Examples:
  reconcile predict --file pair.json
  reconcile predict --file pair.json --threshold 0.9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(predictFile)
		if err != nil {
			return eris.Wrap(err, "read pair file")
		}

		var pair model.TransactionPair
		if err := json.Unmarshal(data, &pair); err != nil {
			return eris.Wrap(err, "parse pair file")
		}

		threshold := predictThreshold
		if threshold == 0 {
			threshold = cfg.Match.DefaultThreshold
		}
		if threshold < 0 || threshold > 1 {
			return eris.New("threshold must be between 0 and 1")
		}

		scorer := match.NewScorer(cfg.Match)
		result := scorer.Predict(pair.Reward, pair.POS, threshold)

		return printJSON(cmd, result)
	},
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	predictCmd.Flags().StringVar(&predictFile, "file", "", "JSON file with the transaction pair (required)")
	predictCmd.Flags().Float64Var(&predictThreshold, "threshold", 0, "predicted-match threshold (default from config)")
	_ = predictCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(predictCmd)
}
