package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/churn"
	"github.com/medspasync/reconcile/internal/match"
	"github.com/medspasync/reconcile/internal/monitoring"
	"github.com/medspasync/reconcile/internal/server"
	"github.com/medspasync/reconcile/internal/store"
	"github.com/medspasync/reconcile/internal/value"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconciliation API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		metrics := monitoring.NewCollector(st)
		srv := server.New(
			match.NewScorer(cfg.Match),
			churn.NewPredictor(cfg.Churn),
			value.NewQuantifier(cfg.Value),
			st,
			metrics,
			cfg.Server,
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Handler(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// openStore opens the run-history store, or returns nil when persistence is
// disabled by config.
func openStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.DSN == "" {
		zap.L().Info("run persistence disabled")
		return nil, nil
	}
	st, err := store.NewSQLite(cfg.Store.DSN)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
