package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/client"
	"github.com/nicjohnson145/kvgate/internal/token"
	"github.com/nicjohnson145/kvgate/internal/validation"
	"github.com/rs/zerolog"
)

type CLIConfig struct {
	Logger zerolog.Logger
	Client *client.Client
	Out    io.Writer

	NowFunc func() time.Time // for unit tests
}

func NewCLI(conf CLIConfig) *CLI {
	c := &CLI{
		log:     conf.Logger,
		client:  conf.Client,
		out:     conf.Out,
		nowFunc: conf.NowFunc,
	}
	if c.nowFunc == nil {
		c.nowFunc = time.Now
	}
	return c
}

// CLI runs a single command against the gateway and prints the result as JSON
type CLI struct {
	log     zerolog.Logger
	client  *client.Client
	out     io.Writer
	nowFunc func() time.Time
}

func (c *CLI) print(v any) error {
	b, err := json.MarshalIndent(v, "", "   ")
	if err != nil {
		return fmt.Errorf("error marshalling output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(b))
	return err
}

func (c *CLI) Token(signingKey []byte, subject string, ttl time.Duration) error {
	if len(signingKey) == 0 {
		return fmt.Errorf("a signing key is required to mint tokens")
	}
	if subject == "" {
		return fmt.Errorf("a subject is required")
	}

	str, err := token.GenerateJWT(signingKey, token.New(subject, c.nowFunc(), ttl))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.out, str)
	return err
}

func (c *CLI) SetSecret(ctx context.Context, name string, req api.SetSecretRequest) error {
	if err := validation.CheckWindow(req.NotBefore, req.ExpiresOn); err != nil {
		return err
	}
	secret, err := c.client.SetSecret(ctx, name, req)
	if err != nil {
		return err
	}
	return c.print(secret)
}

func (c *CLI) UpdateSecret(ctx context.Context, name string, version string, req api.UpdatePropertiesRequest) error {
	if err := validation.CheckWindow(req.NotBefore, req.ExpiresOn); err != nil {
		return err
	}
	props, err := c.client.UpdateSecretProperties(ctx, name, version, req)
	if err != nil {
		return err
	}
	return c.print(props)
}

func (c *CLI) GetSecret(ctx context.Context, name string, version string) error {
	secret, err := c.client.GetSecret(ctx, name, version)
	if err != nil {
		return err
	}
	return c.print(secret)
}

func (c *CLI) ListSecrets(ctx context.Context) error {
	list, err := c.client.ListSecrets(ctx)
	if err != nil {
		return err
	}
	return c.print(list)
}

func (c *CLI) ListSecretVersions(ctx context.Context, name string) error {
	list, err := c.client.ListSecretVersions(ctx, name)
	if err != nil {
		return err
	}
	return c.print(list)
}

func (c *CLI) DeleteSecret(ctx context.Context, name string) error {
	deleted, err := c.client.DeleteSecret(ctx, name)
	if err != nil {
		return err
	}
	return c.print(deleted)
}

// DeletedSecrets lists every soft-deleted secret, or shows one when name is set
func (c *CLI) DeletedSecrets(ctx context.Context, name string) error {
	if name != "" {
		deleted, err := c.client.GetDeletedSecret(ctx, name)
		if err != nil {
			return err
		}
		return c.print(deleted)
	}

	list, err := c.client.ListDeletedSecrets(ctx)
	if err != nil {
		return err
	}
	return c.print(list)
}

func (c *CLI) PurgeSecret(ctx context.Context, name string) error {
	if err := c.client.PurgeDeletedSecret(ctx, name); err != nil {
		return err
	}
	c.log.Info().Str("name", name).Msg("secret purged")
	return nil
}

func (c *CLI) RecoverSecret(ctx context.Context, name string) error {
	props, err := c.client.RecoverDeletedSecret(ctx, name)
	if err != nil {
		return err
	}
	return c.print(props)
}

func (c *CLI) Audit(ctx context.Context, secret string, limit int) error {
	events, err := c.client.ListAuditEvents(ctx, secret, limit)
	if err != nil {
		return err
	}
	return c.print(events)
}
