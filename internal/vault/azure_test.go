package vault

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newAzureResponseError(t *testing.T, status int, code string) error {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, "https://some-vault.vault.azure.net/secrets/some-secret", nil)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"error":{"code":%q,"message":"something went wrong"}}`, code)
	return runtime.NewResponseError(&http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	})
}

func TestAzureError(t *testing.T) {
	t.Parallel()

	testData := []struct {
		name   string
		status int
		code   string
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, code: "SecretNotFound", want: ErrSecretNotFound},
		{name: "conflict", status: http.StatusConflict, code: "Conflict", want: ErrSecretConflict},
		{name: "forbidden", status: http.StatusForbidden, code: "Forbidden", want: ErrPermissionDenied},
		{name: "unauthorized", status: http.StatusUnauthorized, code: "Unauthorized", want: ErrPermissionDenied},
		{name: "bad request", status: http.StatusBadRequest, code: "BadParameter", want: ErrInvalidRequest},
		{name: "throttled", status: http.StatusTooManyRequests, code: "Throttled", want: ErrThrottled},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			err := azureError(newAzureResponseError(t, tc.status, tc.code))
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("unmapped status passes through", func(t *testing.T) {
		err := azureError(newAzureResponseError(t, http.StatusInternalServerError, "InternalError"))
		require.NotErrorIs(t, err, ErrSecretNotFound)
		require.Error(t, err)
	})

	t.Run("non response errors pass through", func(t *testing.T) {
		orig := fmt.Errorf("dial tcp: connection refused")
		require.Equal(t, orig, azureError(orig))
	})
}

func TestFromAzureSecret(t *testing.T) {
	t.Parallel()

	var (
		created = time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)
		expires = time.Date(2096, time.May, 15, 15, 30, 0, 0, time.UTC)
		id      = azsecrets.ID("https://some-vault.vault.azure.net/secrets/db-password/0123456789abcdef")
	)

	got := fromAzureSecret(azsecrets.Secret{
		ID:          &id,
		Value:       to.Ptr("hunter2"),
		ContentType: to.Ptr("text/plain"),
		Tags:        map[string]*string{"env": to.Ptr("prod")},
		Attributes: &azsecrets.SecretAttributes{
			Enabled: to.Ptr(true),
			Expires: &expires,
			Created: &created,
			Updated: &created,
		},
	})

	require.Equal(
		t,
		&Secret{
			SecretProperties: SecretProperties{
				SecretAttributes: SecretAttributes{
					ContentType: "text/plain",
					Enabled:     to.Ptr(true),
					ExpiresOn:   &expires,
					Tags:        map[string]string{"env": "prod"},
				},
				Name:      "db-password",
				Version:   "0123456789abcdef",
				CreatedOn: &created,
				UpdatedOn: &created,
			},
			Value: "hunter2",
		},
		got,
	)
}

func TestFromAzureDeletedProperties(t *testing.T) {
	t.Parallel()

	var (
		deleted = time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)
		purge   = deleted.Add(90 * 24 * time.Hour)
		id      = azsecrets.ID("https://some-vault.vault.azure.net/secrets/db-password")
	)

	got := fromAzureDeletedProperties(&azsecrets.DeletedSecretProperties{
		ID:                 &id,
		RecoveryID:         to.Ptr("https://some-vault.vault.azure.net/deletedsecrets/db-password"),
		DeletedDate:        &deleted,
		ScheduledPurgeDate: &purge,
	})

	require.Equal(t, "db-password", got.Name)
	require.Equal(t, "", got.Version)
	require.Equal(t, "https://some-vault.vault.azure.net/deletedsecrets/db-password", got.RecoveryID)
	require.Equal(t, &deleted, got.DeletedOn)
	require.Equal(t, &purge, got.ScheduledPurgeDate)
}

func TestAzureTags(t *testing.T) {
	t.Parallel()

	require.Nil(t, azureTags(nil))
	require.Equal(t, map[string]string{"a": "b"}, fromAzureTags(azureTags(map[string]string{"a": "b"})))
	require.Nil(t, fromAzureTags(map[string]*string{}))
}

func TestPickAzureVersion(t *testing.T) {
	t.Parallel()

	var (
		first  = time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)
		second = first.Add(time.Hour)
	)

	versions := []*SecretProperties{
		{Name: "db-password", Version: "bbb", CreatedOn: &second},
		{Name: "db-password", Version: "aaa", CreatedOn: &first},
	}

	require.Equal(t, "bbb", pickAzureVersion(versions, "").Version)
	require.Equal(t, "aaa", pickAzureVersion(versions, "aaa").Version)
	require.Nil(t, pickAzureVersion(versions, "ccc"))
	require.Nil(t, pickAzureVersion(nil, ""))
}

func TestAzureBenchTests(t *testing.T) {
	if os.Getenv("AZURE_BENCH_TESTS") == "" {
		t.Skipf("skipping bench tests due to AZURE_BENCH_TESTS not set")
	}

	client, err := NewAzure(AzureConfig{
		Logger:       zerolog.New(os.Stdout),
		TenantID:     os.Getenv("AZURE_TENANT_ID"),
		ClientID:     os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
		VaultURL:     os.Getenv("AZURE_VAULT_URL"),
	})
	require.NoError(t, err)

	t.Run("set and get", func(t *testing.T) {
		ctx := context.Background()
		set, err := client.SetSecret(ctx, SetSecretParams{Name: "kvgate-bench", Value: "bench-value"})
		require.NoError(t, err)

		got, err := client.GetSecret(ctx, "kvgate-bench", set.Version)
		require.NoError(t, err)
		require.Equal(t, "bench-value", got.Value)
	})
}
