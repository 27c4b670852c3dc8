package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/medspasync/reconcile/internal/model"
	"github.com/medspasync/reconcile/internal/monitoring"
	"github.com/medspasync/reconcile/internal/store"
)

var (
	runsLimit  int
	runsStatus string
	runsStats  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted batch runs",
	Long: `List batch reconciliation runs from the run-history store.

Examples:
  reconcile runs
  reconcile runs --status partial --limit 10
  reconcile runs --stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.DSN == "" {
			return eris.New("run persistence is disabled (store.dsn is empty)")
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if runsStats {
			snap, err := monitoring.NewCollector(st).Collect(cmd.Context(), 24)
			if err != nil {
				return eris.Wrap(err, "collect run stats")
			}
			return printJSON(cmd, snap)
		}

		runs, err := st.ListRuns(cmd.Context(), store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list runs")
		}
		return printJSON(cmd, runs)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (complete, partial, failed)")
	runsCmd.Flags().BoolVar(&runsStats, "stats", false, "print a 24h metrics snapshot instead of listing")
	rootCmd.AddCommand(runsCmd)
}
