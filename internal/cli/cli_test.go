package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nicjohnson145/hlp"
	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/client"
	"github.com/nicjohnson145/kvgate/internal/server"
	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/nicjohnson145/kvgate/internal/token"
	"github.com/nicjohnson145/kvgate/internal/validation"
	"github.com/nicjohnson145/kvgate/internal/vault"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()

	mux := http.NewServeMux()
	server.NewServer(server.ServerConfig{
		Logger:        zerolog.Nop(),
		VaultClient:   vault.NewMemory(vault.MemoryConfig{Logger: zerolog.Nop(), Retention: time.Hour}),
		StorageClient: storage.NewNoop(),
		Validator:     hlp.Must(validation.New()),
	}).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	return NewCLI(CLIConfig{
		Logger: zerolog.Nop(),
		Client: client.NewClient(client.ClientConfig{
			Logger:  zerolog.Nop(),
			BaseURL: srv.URL,
		}),
		Out: out,
	}), out
}

func decodeOutput[T any](t *testing.T, out *bytes.Buffer) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	out.Reset()
	return v
}

func TestCLI_Token(t *testing.T) {
	t.Parallel()

	now := time.Now().Add(-time.Minute).Truncate(time.Second)
	key := []byte("some-signing-key")

	t.Run("happy path", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := NewCLI(CLIConfig{
			Logger:  zerolog.Nop(),
			Out:     out,
			NowFunc: func() time.Time { return now },
		})

		require.NoError(t, c.Token(key, "deploy-bot", time.Hour))

		parsed, err := token.ParseJWT(strings.TrimSpace(out.String()), key)
		require.NoError(t, err)
		require.Equal(t, "deploy-bot", parsed.Subject)
		require.Equal(t, now.Add(time.Hour).Unix(), parsed.ExpiresAt)
	})

	t.Run("missing key", func(t *testing.T) {
		c := NewCLI(CLIConfig{Logger: zerolog.Nop(), Out: &bytes.Buffer{}})
		require.Error(t, c.Token(nil, "deploy-bot", time.Hour))
	})

	t.Run("missing subject", func(t *testing.T) {
		c := NewCLI(CLIConfig{Logger: zerolog.Nop(), Out: &bytes.Buffer{}})
		require.Error(t, c.Token(key, "", time.Hour))
	})
}

func TestCLI_Lifecycle(t *testing.T) {
	t.Parallel()

	c, out := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, c.SetSecret(ctx, "db-password", api.SetSecretRequest{
		Value: "hunter2",
		Tags:  map[string]string{"env": "prod"},
	}))
	created := decodeOutput[api.Secret](t, out)
	require.Equal(t, "hunter2", created.Value)
	require.NotEmpty(t, created.Version)

	require.NoError(t, c.UpdateSecret(ctx, "db-password", "", api.UpdatePropertiesRequest{ContentType: hlp.Ptr("text/plain")}))
	props := decodeOutput[api.SecretProperties](t, out)
	require.Equal(t, "text/plain", props.ContentType)

	require.NoError(t, c.GetSecret(ctx, "db-password", created.Version))
	require.Equal(t, "hunter2", decodeOutput[api.Secret](t, out).Value)

	require.NoError(t, c.ListSecrets(ctx))
	require.Len(t, decodeOutput[api.SecretList](t, out).Secrets, 1)

	require.NoError(t, c.ListSecretVersions(ctx, "db-password"))
	require.Len(t, decodeOutput[api.SecretList](t, out).Secrets, 1)

	require.NoError(t, c.DeleteSecret(ctx, "db-password"))
	require.Equal(t, "db-password", decodeOutput[api.DeletedSecret](t, out).Name)

	require.NoError(t, c.DeletedSecrets(ctx, ""))
	require.Len(t, decodeOutput[api.DeletedSecretList](t, out).Secrets, 1)

	require.NoError(t, c.DeletedSecrets(ctx, "db-password"))
	require.Equal(t, "db-password", decodeOutput[api.DeletedSecret](t, out).Name)

	require.NoError(t, c.RecoverSecret(ctx, "db-password"))
	require.Equal(t, "db-password", decodeOutput[api.SecretProperties](t, out).Name)

	require.NoError(t, c.DeleteSecret(ctx, "db-password"))
	out.Reset()
	require.NoError(t, c.PurgeSecret(ctx, "db-password"))
	require.Empty(t, out.String())

	require.Error(t, c.DeletedSecrets(ctx, "db-password"))
}

func TestCLI_WindowCheckedBeforeSending(t *testing.T) {
	t.Parallel()

	// nothing listens here, so any request would fail with a transport error instead
	c := NewCLI(CLIConfig{
		Logger: zerolog.Nop(),
		Client: client.NewClient(client.ClientConfig{Logger: zerolog.Nop(), BaseURL: "http://127.0.0.1:1"}),
		Out:    &bytes.Buffer{},
	})

	now := time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

	err := c.SetSecret(context.Background(), "db-password", api.SetSecretRequest{
		Value:     "hunter2",
		NotBefore: hlp.Ptr(now.Add(time.Hour)),
		ExpiresOn: hlp.Ptr(now),
	})
	require.ErrorIs(t, err, validation.ErrValidation)

	err = c.UpdateSecret(context.Background(), "db-password", "", api.UpdatePropertiesRequest{
		NotBefore: hlp.Ptr(now),
		ExpiresOn: hlp.Ptr(now),
	})
	require.ErrorIs(t, err, validation.ErrValidation)
}
