package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nicjohnson145/hlp"
	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/nicjohnson145/kvgate/internal/validation"
	"github.com/nicjohnson145/kvgate/internal/vault"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, conf ServerConfig) *httptest.Server {
	t.Helper()

	if conf.Validator == nil {
		conf.Validator = hlp.Must(validation.New())
	}
	if conf.StorageClient == nil {
		conf.StorageClient = storage.NewNoop()
	}
	if conf.VaultClient == nil {
		conf.VaultClient = vault.NewMockClient(t)
	}
	conf.Logger = zerolog.Nop()
	conf.NowFunc = func() time.Time {
		return testNow
	}

	mux := http.NewServeMux()
	NewServer(conf).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method string, url string, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestServer_SetSecret(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		client := vault.NewMockClient(t)
		client.
			EXPECT().
			SetSecret(mock.Anything, vault.SetSecretParams{
				Name:  "db-password",
				Value: "hunter2",
				SecretAttributes: vault.SecretAttributes{
					ContentType: "text/plain",
					Tags:        map[string]string{"env": "prod"},
				},
			}).
			Return(&vault.Secret{
				SecretProperties: vault.SecretProperties{Name: "db-password", Version: "abc"},
				Value:            "hunter2",
			}, nil)

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			WriteAuditEvent(mock.Anything, &storage.AuditEvent{
				Operation:  opSetSecret,
				SecretName: "db-password",
				Status:     http.StatusOK,
				CreatedAt:  testNow,
			}).
			Return(nil)

		srv := newTestServer(t, ServerConfig{VaultClient: client, StorageClient: store})
		resp, body := do(t, http.MethodPut, srv.URL+"/secrets/db-password", `{"value":"hunter2","contentType":"text/plain","tags":{"env":"prod"}}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[api.Secret](t, body)
		require.Equal(t, "db-password", got.Name)
		require.Equal(t, "abc", got.Version)
		require.Equal(t, "hunter2", got.Value)
	})

	t.Run("validation failure is audited and never reaches the vault", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			WriteAuditEvent(mock.Anything, mock.MatchedBy(func(e *storage.AuditEvent) bool {
				return e.Operation == opSetSecret && e.Status == http.StatusBadRequest
			})).
			Return(nil)

		srv := newTestServer(t, ServerConfig{StorageClient: store})
		resp, body := do(t, http.MethodPut, srv.URL+"/secrets/db-password", `{"value":"x","enabled":"yes","colour":"red"}`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		got := decode[api.ErrorResponse](t, body)
		require.Equal(t, "validation failed", got.Error)
		require.GreaterOrEqual(t, len(got.Violations), 2)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, ServerConfig{})
		resp, _ := do(t, http.MethodPut, srv.URL+"/secrets/db_password", `{"value":"x"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, ServerConfig{})
		resp, _ := do(t, http.MethodPut, srv.URL+"/secrets/db-password", fmt.Sprintf(`{"value":%q}`, strings.Repeat("a", maxBodyBytes)))
		require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("audit failure does not fail the call", func(t *testing.T) {
		t.Parallel()

		client := vault.NewMockClient(t)
		client.
			EXPECT().
			SetSecret(mock.Anything, mock.Anything).
			Return(&vault.Secret{SecretProperties: vault.SecretProperties{Name: "db-password"}}, nil)

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			WriteAuditEvent(mock.Anything, mock.Anything).
			Return(errors.New("disk full"))

		srv := newTestServer(t, ServerConfig{VaultClient: client, StorageClient: store})
		resp, _ := do(t, http.MethodPut, srv.URL+"/secrets/db-password", `{"value":"x"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	testData := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: vault.ErrSecretNotFound, status: http.StatusNotFound},
		{name: "conflict", err: vault.ErrSecretConflict, status: http.StatusConflict},
		{name: "permission denied", err: vault.ErrPermissionDenied, status: http.StatusForbidden},
		{name: "disabled", err: vault.ErrSecretDisabled, status: http.StatusForbidden},
		{name: "invalid", err: vault.ErrInvalidRequest, status: http.StatusBadRequest},
		{name: "throttled", err: vault.ErrThrottled, status: http.StatusTooManyRequests},
		{name: "not supported", err: vault.ErrNotSupported, status: http.StatusNotImplemented},
		{name: "anything else", err: errors.New("connection reset by peer"), status: http.StatusBadGateway},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := vault.NewMockClient(t)
			client.
				EXPECT().
				GetSecret(mock.Anything, "db-password", "").
				Return(nil, fmt.Errorf("error getting secret: %w", tc.err))

			srv := newTestServer(t, ServerConfig{VaultClient: client})
			resp, body := do(t, http.MethodGet, srv.URL+"/secrets/db-password", "")

			require.Equal(t, tc.status, resp.StatusCode)
			got := decode[api.ErrorResponse](t, body)
			require.NotEmpty(t, got.Error)
			if tc.status == http.StatusBadGateway {
				require.NotContains(t, got.Error, "connection reset")
			}
		})
	}
}

func TestServer_GetSecretVersion(t *testing.T) {
	t.Parallel()

	client := vault.NewMockClient(t)
	client.
		EXPECT().
		GetSecret(mock.Anything, "db-password", "abc123").
		Return(&vault.Secret{SecretProperties: vault.SecretProperties{Name: "db-password", Version: "abc123"}, Value: "old"}, nil)

	srv := newTestServer(t, ServerConfig{VaultClient: client})

	resp, body := do(t, http.MethodGet, srv.URL+"/secrets/db-password?version=abc123", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "old", decode[api.Secret](t, body).Value)

	resp, _ = do(t, http.MethodGet, srv.URL+"/secrets/db-password?version=a.b", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UpdateSecretProperties(t *testing.T) {
	t.Parallel()

	client := vault.NewMockClient(t)
	client.
		EXPECT().
		UpdateSecretProperties(mock.Anything, vault.UpdatePropertiesParams{
			Name:    "db-password",
			Version: "abc123",
			Enabled: hlp.Ptr(false),
		}).
		Return(&vault.SecretProperties{Name: "db-password", Version: "abc123", SecretAttributes: vault.SecretAttributes{Enabled: hlp.Ptr(false)}}, nil)

	srv := newTestServer(t, ServerConfig{VaultClient: client})

	resp, body := do(t, http.MethodPatch, srv.URL+"/secrets/db-password?version=abc123", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.SecretProperties](t, body)
	require.Equal(t, hlp.Ptr(false), got.Enabled)

	resp, _ = do(t, http.MethodPatch, srv.URL+"/secrets/db-password", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	backend := vault.NewMemory(vault.MemoryConfig{
		Logger:    zerolog.Nop(),
		Retention: 24 * time.Hour,
		NowFunc: func() time.Time {
			return testNow
		},
	})

	store := storage.NewMockClient(t)
	audited := []string{}
	store.
		EXPECT().
		WriteAuditEvent(mock.Anything, mock.Anything).
		Run(func(_ context.Context, event *storage.AuditEvent) {
			audited = append(audited, fmt.Sprintf("%v:%v", event.Operation, event.Status))
		}).
		Return(nil)

	srv := newTestServer(t, ServerConfig{VaultClient: backend, StorageClient: store})

	resp, _ := do(t, http.MethodPut, srv.URL+"/secrets/db-password", `{"value":"hunter2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, http.MethodGet, srv.URL+"/secrets", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[api.SecretList](t, body).Secrets, 1)

	resp, body = do(t, http.MethodGet, srv.URL+"/secrets/db-password/versions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[api.SecretList](t, body).Secrets, 1)

	resp, body = do(t, http.MethodDelete, srv.URL+"/secrets/db-password", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decode[api.DeletedSecret](t, body)
	require.Equal(t, testNow.Add(24*time.Hour), *deleted.ScheduledPurgeDate)

	resp, _ = do(t, http.MethodGet, srv.URL+"/secrets/db-password", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/deletedsecrets", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[api.DeletedSecretList](t, body).Secrets, 1)

	resp, _ = do(t, http.MethodGet, srv.URL+"/deletedsecrets/db-password", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/deletedsecrets/db-password/recover", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/secrets/db-password", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hunter2", decode[api.Secret](t, body).Value)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/deletedsecrets/db-password", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/secrets/db-password", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodDelete, srv.URL+"/deletedsecrets/db-password", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, body)

	resp, _ = do(t, http.MethodGet, srv.URL+"/deletedsecrets/db-password", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.Equal(
		t,
		[]string{
			"SetSecret:200",
			"DeleteSecret:200",
			"RecoverDeletedSecret:200",
			"PurgeDeletedSecret:404",
			"DeleteSecret:200",
			"PurgeDeletedSecret:204",
		},
		audited,
	)
}

func TestServer_Audit(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			ListAuditEvents(mock.Anything, storage.AuditFilter{SecretName: "db-password", Limit: 5}).
			Return([]storage.AuditEvent{{ID: "01J", Operation: opSetSecret, SecretName: "db-password", Status: 200, CreatedAt: testNow}}, nil)

		srv := newTestServer(t, ServerConfig{StorageClient: store})
		resp, body := do(t, http.MethodGet, srv.URL+"/audit?secret=db-password&limit=5", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[api.AuditEventList](t, body)
		require.Len(t, got.Events, 1)
		require.Equal(t, "01J", got.Events[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, ServerConfig{})
		for _, limit := range []string{"0", "1001", "ten"} {
			resp, _ := do(t, http.MethodGet, srv.URL+"/audit?limit="+limit, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "limit %v", limit)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			ListAuditEvents(mock.Anything, mock.Anything).
			Return(nil, errors.New("database is locked"))

		srv := newTestServer(t, ServerConfig{StorageClient: store})
		resp, _ := do(t, http.MethodGet, srv.URL+"/audit", "")
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("read missing", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, ServerConfig{})
		resp, _ := do(t, http.MethodGet, srv.URL+"/audit/nope", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, ServerConfig{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}
