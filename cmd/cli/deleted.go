package main

import (
	"context"

	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/spf13/cobra"
)

func deleted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deleted",
		Short: "Manage soft-deleted secrets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List soft-deleted secrets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithCLI("deleted list", func(ctx context.Context, c *cli.CLI) error {
					return c.DeletedSecrets(ctx, "")
				})
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show a soft-deleted secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithCLI("deleted get", func(ctx context.Context, c *cli.CLI) error {
					return c.DeletedSecrets(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "purge NAME",
			Short: "Permanently remove a soft-deleted secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithCLI("purge", func(ctx context.Context, c *cli.CLI) error {
					return c.PurgeSecret(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "recover NAME",
			Short: "Restore a soft-deleted secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithCLI("recover", func(ctx context.Context, c *cli.CLI) error {
					return c.RecoverSecret(ctx, args[0])
				})
			},
		},
	)

	return cmd
}
