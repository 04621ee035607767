package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

const checkSample = "This are a test."

func newCheckCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the connection to the configured provider",
		Long:  "Send a short sample through the correct operation and report the outcome.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}

			a, err := buildAdapter(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			if !a.Available() {
				return fmt.Errorf("check: provider %s is not available", a.Name())
			}

			logger.Info("check: sending sample", "provider", a.Name(), "text", checkSample)
			res, err := newClient(cfg, a, logger).Transform(cmd.Context(), transform.Request{
				Text:      checkSample,
				Operation: operation.Correct,
			})
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s answered in %d attempt(s), %s\n%s\n",
				res.Provider, res.Attempts, res.Elapsed.Round(time.Millisecond), res.Text)
			return nil
		},
	}
}
