package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/medspasync/reconcile/internal/model"
	"github.com/medspasync/reconcile/internal/value"
)

var valueFile string

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Quantify ROI for a practice",
	Long: `Compute value metrics from a practice-snapshot JSON file.

Example:
  reconcile value --file practice.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(valueFile)
		if err != nil {
			return eris.Wrap(err, "read practice file")
		}

		var snap model.PracticeSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return eris.Wrap(err, "parse practice file")
		}

		metrics := value.NewQuantifier(cfg.Value).Quantify(snap)
		return printJSON(cmd, metrics)
	},
}

func init() {
	valueCmd.Flags().StringVar(&valueFile, "file", "", "JSON file with the practice snapshot (required)")
	_ = valueCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(valueCmd)
}
