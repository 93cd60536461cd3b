package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/nicjohnson145/kvgate/internal/client"
	"github.com/nicjohnson145/kvgate/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const requestTimeout = 30 * time.Second

func newLogger() zerolog.Logger {
	cli.InitConfig()
	return logging.Init(&logging.LoggingConfig{
		Level:  logging.LogLevel(viper.GetString(cli.LoggingLevel)),
		Format: logging.LogFormat(viper.GetString(cli.LoggingFormat)),
	})
}

func newCLI() (*cli.CLI, zerolog.Logger) {
	logger := newLogger()
	return cli.NewCLI(cli.CLIConfig{
		Logger: logger,
		Client: client.NewClient(client.ClientConfig{
			Logger:  logging.Component(logger, "client"),
			BaseURL: viper.GetString(cli.ServerURL),
			Token:   viper.GetString(cli.ServerToken),
		}),
		Out: os.Stdout,
	}), logger
}

// runWithCLI runs f against a freshly built CLI and reports any failure the way every subcommand does
func runWithCLI(action string, f func(ctx context.Context, c *cli.CLI) error) error {
	c, logger := newCLI()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := f(ctx, c); err != nil {
		logger.Error().Msgf("error executing %v", action)
		// Print this, validation failures carry one line per violation
		fmt.Println(err)
		return err
	}

	return nil
}

func parseTimeFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q as an RFC3339 timestamp: %w", value, err)
	}
	return &t, nil
}
