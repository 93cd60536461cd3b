package main

import (
	"context"

	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/spf13/cobra"
)

func audit() *cobra.Command {
	var secretName string
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent audit events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("audit", func(ctx context.Context, c *cli.CLI) error {
				return c.Audit(ctx, secretName, limit)
			})
		},
	}

	cmd.Flags().StringVar(&secretName, "secret", "", "Only show events for this secret")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of events, the server default applies when unset")

	return cmd
}
