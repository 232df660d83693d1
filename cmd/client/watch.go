package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/metrics"
)

func newWatchCmd(s *session) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep syncing in the background until interrupted",
		Long: `Runs the sync engine on a timer, watches server reachability and listens
for realtime updates. watch keeps the local database open, so stop it before
running commands that change todos; their changes are sent on the next cycle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if metricsAddr != "" {
				stop := serveMetrics(ctx, metricsAddr)
				defer stop()
			}
			s.io.Println("Watching for changes, press Ctrl+C to stop.")
			return s.app.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")
	return cmd
}

// serveMetrics отдает метрики, пока не вызвана возвращенная функция
func serveMetrics(ctx context.Context, addr string) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Handler(slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", fmt.Errorf("listen %s: %w", addr, err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Failed to stop metrics server", "error", err)
		}
	}
}
