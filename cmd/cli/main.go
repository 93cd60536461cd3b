package main

import (
	"os"

	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := root().Execute(); err != nil {
		os.Exit(1)
	}
}

func root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kvgate",
		Short: "Manage secrets through a kvgate server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// So we don't print usage messages on execution errors
			cmd.SilenceUsage = true
			// So we dont double report errors
			cmd.SilenceErrors = true
		},
	}

	cmd.PersistentFlags().String("url", "", "Base URL of the kvgate server")
	cmd.PersistentFlags().String("token", "", "Bearer token to send with each request")
	_ = viper.BindPFlag(cli.ServerURL, cmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag(cli.ServerToken, cmd.PersistentFlags().Lookup("token"))

	cmd.AddCommand(
		mintToken(),
		secret(),
		deleted(),
		audit(),
	)

	return cmd
}
