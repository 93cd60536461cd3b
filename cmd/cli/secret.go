package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func secret() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage live secrets",
	}

	cmd.AddCommand(
		setSecret(),
		updateSecret(),
		getSecret(),
		listSecrets(),
		listVersions(),
		deleteSecret(),
	)

	return cmd
}

func addAttributeFlags(flags *pflag.FlagSet) {
	flags.String("content-type", "", "Content type hint stored with the secret")
	flags.Bool("enabled", true, "Whether the secret can be read")
	flags.String("not-before", "", "RFC3339 time before which the secret is not valid")
	flags.String("expires-on", "", "RFC3339 time after which the secret is not valid")
	flags.StringToString("tag", nil, "Tags to attach, as key=value, repeatable")
}

type attributeFlags struct {
	contentType *string
	enabled     *bool
	notBefore   string
	expiresOn   string
	tags        map[string]string
}

// readAttributeFlags only picks up flags that were set on the command line
func readAttributeFlags(flags *pflag.FlagSet) (attributeFlags, error) {
	out := attributeFlags{}

	if flags.Changed("content-type") {
		ct, err := flags.GetString("content-type")
		if err != nil {
			return out, err
		}
		out.contentType = &ct
	}
	if flags.Changed("enabled") {
		enabled, err := flags.GetBool("enabled")
		if err != nil {
			return out, err
		}
		out.enabled = &enabled
	}

	var err error
	if out.notBefore, err = flags.GetString("not-before"); err != nil {
		return out, err
	}
	if out.expiresOn, err = flags.GetString("expires-on"); err != nil {
		return out, err
	}
	if flags.Changed("tag") {
		if out.tags, err = flags.GetStringToString("tag"); err != nil {
			return out, err
		}
	}

	return out, nil
}

func readValue(value string, valueFile string) (string, error) {
	switch {
	case value != "" && valueFile != "":
		return "", fmt.Errorf("only one of --value and --value-file may be given")
	case valueFile == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading value from stdin: %w", err)
		}
		return string(b), nil
	case valueFile != "":
		b, err := os.ReadFile(valueFile)
		if err != nil {
			return "", fmt.Errorf("error reading value file: %w", err)
		}
		return string(b), nil
	case value != "":
		return value, nil
	default:
		return "", fmt.Errorf("one of --value or --value-file is required")
	}
}

func setSecret() *cobra.Command {
	var value string
	var valueFile string

	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Create a secret or add a new version to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("set", func(ctx context.Context, c *cli.CLI) error {
				val, err := readValue(value, valueFile)
				if err != nil {
					return err
				}
				attrs, err := readAttributeFlags(cmd.Flags())
				if err != nil {
					return err
				}

				req := api.SetSecretRequest{
					Value:   val,
					Enabled: attrs.enabled,
					Tags:    attrs.tags,
				}
				if attrs.contentType != nil {
					req.ContentType = *attrs.contentType
				}
				if req.NotBefore, err = parseTimeFlag(attrs.notBefore); err != nil {
					return err
				}
				if req.ExpiresOn, err = parseTimeFlag(attrs.expiresOn); err != nil {
					return err
				}

				return c.SetSecret(ctx, args[0], req)
			})
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Secret value")
	cmd.Flags().StringVar(&valueFile, "value-file", "", "Read the secret value from a file, - for stdin")
	addAttributeFlags(cmd.Flags())

	return cmd
}

func updateSecret() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update the attributes of a secret version without changing its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("update", func(ctx context.Context, c *cli.CLI) error {
				attrs, err := readAttributeFlags(cmd.Flags())
				if err != nil {
					return err
				}

				req := api.UpdatePropertiesRequest{
					ContentType: attrs.contentType,
					Enabled:     attrs.enabled,
					Tags:        attrs.tags,
				}
				if req.NotBefore, err = parseTimeFlag(attrs.notBefore); err != nil {
					return err
				}
				if req.ExpiresOn, err = parseTimeFlag(attrs.expiresOn); err != nil {
					return err
				}

				return c.UpdateSecret(ctx, args[0], version, req)
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Version to update, defaults to the latest")
	addAttributeFlags(cmd.Flags())

	return cmd
}

func getSecret() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Fetch a secret value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("get", func(ctx context.Context, c *cli.CLI) error {
				return c.GetSecret(ctx, args[0], version)
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Version to fetch, defaults to the latest")

	return cmd
}

func listSecrets() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("list", func(ctx context.Context, c *cli.CLI) error {
				return c.ListSecrets(ctx)
			})
		},
	}
}

func listVersions() *cobra.Command {
	return &cobra.Command{
		Use:   "versions NAME",
		Short: "List every version of a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("versions", func(ctx context.Context, c *cli.CLI) error {
				return c.ListSecretVersions(ctx, args[0])
			})
		},
	}
}

func deleteSecret() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Soft-delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithCLI("delete", func(ctx context.Context, c *cli.CLI) error {
				return c.DeleteSecret(ctx, args[0])
			})
		},
	}
}
