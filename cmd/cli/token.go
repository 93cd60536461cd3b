package main

import (
	"os"
	"time"

	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mintToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token SUBJECT",
		Short: "Mint a bearer token",
		Long:  "Mint a bearer token signed with the server's signing key, read from AUTH_SIGNING_KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			ttl, err := time.ParseDuration(viper.GetString(cli.TokenTTL))
			if err != nil {
				logger.Err(err).Msg("error parsing token ttl")
				return err
			}

			c := cli.NewCLI(cli.CLIConfig{
				Logger: logger,
				Out:    os.Stdout,
			})
			if err := c.Token([]byte(viper.GetString(cli.TokenSigningKey)), args[0], ttl); err != nil {
				logger.Err(err).Msg("error minting token")
				return err
			}

			return nil
		},
	}

	cmd.Flags().String("ttl", "", "How long the token stays valid")
	_ = viper.BindPFlag(cli.TokenTTL, cmd.Flags().Lookup("ttl"))

	return cmd
}
