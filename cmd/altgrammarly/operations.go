package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/operation"
)

func newOperationsCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range operation.All() {
				if verbose {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", op, op.Title(), op.Instruction())
				} else {
					fmt.Fprintf(tw, "%s\t%s\n", op, op.Title())
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include the instruction sent to the model")

	return cmd
}
