package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "run <operation> [text...]",
		Short: "Transform text from the arguments or stdin",
		Long: `Transform text with one operation and print the result to stdout.

Text comes from the remaining arguments or, when there are none, from stdin.
The result is written without a trailing newline so it can replace a
selection verbatim. Diagnostics go to stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.Parse(args[0])
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			if len(args) == 1 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := buildAdapter(ctx, cfg, logger)
			if err != nil {
				return err
			}

			res, err := newClient(cfg, a, logger).Transform(ctx, transform.Request{
				Text:      text,
				Operation: op,
				App:       app,
			})
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), res.Text)
			return err
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "name of the application the text came from, selects a persona")

	return cmd
}
