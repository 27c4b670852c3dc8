package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/match"
	"github.com/medspasync/reconcile/internal/model"
)

var (
	batchFile        string
	batchThreshold   float64
	batchParallelism int
	batchNoPersist   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a file of transaction pairs",
	Long: `Score an ordered list of transaction pairs from a JSON file containing
{"transaction_pairs": [{"reward_transaction": {...}, "pos_transaction": {...}}, ...]}.

Malformed pairs are isolated: they produce an error slot marked for manual
review without aborting the rest of the batch. The run summary is persisted
to the run-history store unless --no-persist is set.

Examples:
  reconcile batch --file pairs.json
  reconcile batch --file pairs.json --threshold 0.9 --parallelism 16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(batchFile)
		if err != nil {
			return eris.Wrap(err, "read batch file")
		}

		var payload struct {
			Pairs []json.RawMessage `json:"transaction_pairs"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return eris.Wrap(err, "parse batch file")
		}
		if payload.Pairs == nil {
			return eris.New("transaction_pairs must be a list")
		}

		threshold := batchThreshold
		if threshold == 0 {
			threshold = cfg.Match.DefaultThreshold
		}
		if threshold < 0 || threshold > 1 {
			return eris.New("threshold must be between 0 and 1")
		}

		inputs := make([]match.BatchInput, len(payload.Pairs))
		for i, raw := range payload.Pairs {
			var pair model.TransactionPair
			if err := json.Unmarshal(raw, &pair); err != nil {
				inputs[i] = match.BatchInput{Invalid: "malformed pair: " + err.Error()}
				continue
			}
			inputs[i] = match.BatchInput{Pair: pair}
		}

		scorer := match.NewScorer(cfg.Match)
		result := scorer.ScoreBatch(cmd.Context(), inputs, threshold, batchParallelism)

		if !batchNoPersist && cfg.Store.DSN != "" {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			run, err := st.CreateRun(cmd.Context(), batchFile, threshold, result)
			if err != nil {
				return eris.Wrap(err, "persist batch run")
			}
			zap.L().Info("batch run persisted", zap.String("run_id", run.ID))
		}

		return printJSON(cmd, result)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "JSON file with transaction_pairs (required)")
	batchCmd.Flags().Float64Var(&batchThreshold, "threshold", 0, "predicted-match threshold (default from config)")
	batchCmd.Flags().IntVar(&batchParallelism, "parallelism", match.DefaultBatchParallelism, "concurrent pair scoring limit")
	batchCmd.Flags().BoolVar(&batchNoPersist, "no-persist", false, "skip writing the run to the store")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
