package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/rs/zerolog"
)

// APIError is a non-2xx answer from the gateway
type APIError struct {
	StatusCode int
	Message    string
	Violations []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%d: %v: %v", e.StatusCode, msg, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("%d: %v", e.StatusCode, msg)
}

type ClientConfig struct {
	Logger     zerolog.Logger
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(conf ClientConfig) *Client {
	c := &Client{
		log:        conf.Logger,
		baseURL:    strings.TrimSuffix(conf.BaseURL, "/"),
		token:      conf.Token,
		httpClient: conf.HTTPClient,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c
}

type Client struct {
	log        zerolog.Logger
	baseURL    string
	token      string
	httpClient *http.Client
}

func (c *Client) builder(pathFmt string, args ...any) *requests.Builder {
	b := requests.
		URL(c.baseURL).
		Pathf(pathFmt, args...).
		Client(c.httpClient)
	if c.token != "" {
		b = b.Bearer(c.token)
	}
	return b
}

func (c *Client) fetch(ctx context.Context, b *requests.Builder, action string) error {
	var errResp api.ErrorResponse
	err := b.ErrorJSON(&errResp).Fetch(ctx)
	if err == nil {
		return nil
	}

	var respErr *requests.ResponseError
	if errors.As(err, &respErr) {
		c.log.Debug().Interface("body", errResp).Msg("error response body")
		return fmt.Errorf("error %v: %w", action, &APIError{
			StatusCode: respErr.StatusCode,
			Message:    errResp.Error,
			Violations: errResp.Violations,
		})
	}

	return fmt.Errorf("error %v: %w", action, err)
}

func (c *Client) SetSecret(ctx context.Context, name string, req api.SetSecretRequest) (*api.Secret, error) {
	var resp api.Secret
	b := c.builder("/secrets/%s", name).Put().BodyJSON(req).ToJSON(&resp)
	if err := c.fetch(ctx, b, "setting secret"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateSecretProperties(ctx context.Context, name string, version string, req api.UpdatePropertiesRequest) (*api.SecretProperties, error) {
	var resp api.SecretProperties
	b := c.builder("/secrets/%s", name).Patch().BodyJSON(req).ToJSON(&resp)
	if version != "" {
		b = b.Param("version", version)
	}
	if err := c.fetch(ctx, b, "updating secret properties"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSecret(ctx context.Context, name string, version string) (*api.Secret, error) {
	var resp api.Secret
	b := c.builder("/secrets/%s", name).ToJSON(&resp)
	if version != "" {
		b = b.Param("version", version)
	}
	if err := c.fetch(ctx, b, "getting secret"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSecrets(ctx context.Context) (*api.SecretList, error) {
	var resp api.SecretList
	if err := c.fetch(ctx, c.builder("/secrets").ToJSON(&resp), "listing secrets"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSecretVersions(ctx context.Context, name string) (*api.SecretList, error) {
	var resp api.SecretList
	if err := c.fetch(ctx, c.builder("/secrets/%s/versions", name).ToJSON(&resp), "listing secret versions"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteSecret(ctx context.Context, name string) (*api.DeletedSecret, error) {
	var resp api.DeletedSecret
	if err := c.fetch(ctx, c.builder("/secrets/%s", name).Delete().ToJSON(&resp), "deleting secret"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDeletedSecrets(ctx context.Context) (*api.DeletedSecretList, error) {
	var resp api.DeletedSecretList
	if err := c.fetch(ctx, c.builder("/deletedsecrets").ToJSON(&resp), "listing deleted secrets"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetDeletedSecret(ctx context.Context, name string) (*api.DeletedSecret, error) {
	var resp api.DeletedSecret
	if err := c.fetch(ctx, c.builder("/deletedsecrets/%s", name).ToJSON(&resp), "getting deleted secret"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PurgeDeletedSecret(ctx context.Context, name string) error {
	return c.fetch(ctx, c.builder("/deletedsecrets/%s", name).Delete(), "purging secret")
}

func (c *Client) RecoverDeletedSecret(ctx context.Context, name string) (*api.SecretProperties, error) {
	var resp api.SecretProperties
	if err := c.fetch(ctx, c.builder("/deletedsecrets/%s/recover", name).Post().ToJSON(&resp), "recovering secret"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListAuditEvents(ctx context.Context, secret string, limit int) (*api.AuditEventList, error) {
	var resp api.AuditEventList
	b := c.builder("/audit").ToJSON(&resp)
	if secret != "" {
		b = b.Param("secret", secret)
	}
	if limit > 0 {
		b = b.Param("limit", strconv.Itoa(limit))
	}
	if err := c.fetch(ctx, b, "listing audit events"); err != nil {
		return nil, err
	}
	return &resp, nil
}
