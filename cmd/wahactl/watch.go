package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/waha-client/internal/logger"
)

func (c *cli) watchCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll session status and publish changes until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				interval = c.cfg.WatchInterval
			}
			ctx := cmd.Context()

			if h := c.ctrl.MetricsHandler(); h != nil {
				srv := c.serveMetrics(h)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}
			return c.ctrl.Watch(ctx, interval)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (defaults to WATCH_INTERVAL_SECONDS)")
	return cmd
}

func (c *cli) serveMetrics(h http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: c.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.InfoObj("metrics server listening", "addr", c.cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorObj("metrics server failed", "error", err)
		}
	}()
	return srv
}
