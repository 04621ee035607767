package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/busy"
	"github.com/varunmitra/altgrammarly/internal/metrics"
	"github.com/varunmitra/altgrammarly/internal/server"
)

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := buildAdapter(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if a.Available() {
				metrics.AdapterAvailable.WithLabelValues(a.Name()).Set(1)
			} else {
				metrics.AdapterAvailable.WithLabelValues(a.Name()).Set(0)
			}

			if cfg.APIKey != "" {
				logger.Info("auth: API key required (X-API-Key header)")
			} else {
				logger.Info("auth: disabled (no api_key configured)")
			}

			client := newClient(cfg, a, logger)
			policy := client.Policy()
			// Worst case: every attempt times out, plus every backoff sleep.
			timeout := time.Duration(policy.MaxAttempts)*cfg.RequestTimeout + policy.TotalBackoff()

			srv := &http.Server{
				Addr: fmt.Sprintf(":%d", cfg.Port),
				Handler: server.SetupMux(server.Options{
					Transformer: client,
					Adapter:     a,
					Guard:       busy.New(),
					APIKey:      cfg.APIKey,
					RateLimit:   cfg.RateLimit,
					Timeout:     timeout,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("altgrammarly api listening", "addr", srv.Addr, "provider", a.Name())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override listen port")

	return cmd
}
