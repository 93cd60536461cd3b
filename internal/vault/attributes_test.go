package vault

import (
	"testing"
	"time"

	"github.com/nicjohnson145/hlp"
	"github.com/stretchr/testify/require"
)

func TestAttributesEncoding(t *testing.T) {
	t.Parallel()

	expires := time.Date(2096, time.January, 2, 3, 4, 5, 0, time.UTC)
	notBefore := time.Date(2095, time.January, 2, 3, 4, 5, 0, time.UTC)

	testData := []struct {
		name  string
		attrs SecretAttributes
	}{
		{
			name:  "empty",
			attrs: SecretAttributes{},
		},
		{
			name: "everything",
			attrs: SecretAttributes{
				ContentType: "application/json",
				Enabled:     hlp.Ptr(false),
				ExpiresOn:   &expires,
				NotBefore:   &notBefore,
				Tags:        map[string]string{"env": "prod", "team": "payments"},
			},
		},
		{
			name: "tags only",
			attrs: SecretAttributes{
				Tags: map[string]string{"env": "dev"},
			},
		},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeAttributes(encodeAttributes(tc.attrs))
			require.NoError(t, err)
			require.Equal(t, tc.attrs, got)
		})
	}
}

func TestDecodeAttributes(t *testing.T) {
	t.Parallel()

	t.Run("unknown reserved keys are dropped", func(t *testing.T) {
		got, err := decodeAttributes(map[string]string{
			"kvgate:something-new": "x",
			"owner":                "me",
		})
		require.NoError(t, err)
		require.Equal(t, SecretAttributes{Tags: map[string]string{"owner": "me"}}, got)
	})

	t.Run("bad enabled value", func(t *testing.T) {
		_, err := decodeAttributes(map[string]string{attrEnabled: "sometimes"})
		require.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		_, err := decodeAttributes(map[string]string{attrExpiresOn: "tomorrow"})
		require.Error(t, err)
	})
}

func TestSecretAttributes_IsActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

	testData := []struct {
		name  string
		attrs SecretAttributes
		want  bool
	}{
		{name: "no attributes", attrs: SecretAttributes{}, want: true},
		{name: "enabled", attrs: SecretAttributes{Enabled: hlp.Ptr(true)}, want: true},
		{name: "disabled", attrs: SecretAttributes{Enabled: hlp.Ptr(false)}, want: false},
		{name: "not yet active", attrs: SecretAttributes{NotBefore: hlp.Ptr(now.Add(time.Minute))}, want: false},
		{name: "expired", attrs: SecretAttributes{ExpiresOn: hlp.Ptr(now)}, want: false},
		{name: "inside window", attrs: SecretAttributes{NotBefore: hlp.Ptr(now.Add(-time.Minute)), ExpiresOn: hlp.Ptr(now.Add(time.Minute))}, want: true},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.attrs.IsActive(now))
		})
	}
}

func TestUpdatePropertiesParams_Apply(t *testing.T) {
	t.Parallel()

	var (
		notBefore = time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)
		expires   = notBefore.Add(24 * time.Hour)
		stored    = SecretAttributes{NotBefore: &notBefore, ExpiresOn: &expires, ContentType: "text/plain"}
	)

	t.Run("partial update keeps the rest", func(t *testing.T) {
		got, err := UpdatePropertiesParams{Enabled: hlp.Ptr(false)}.apply(stored)
		require.NoError(t, err)
		require.Equal(t, hlp.Ptr(false), got.Enabled)
		require.Equal(t, "text/plain", got.ContentType)
		require.Equal(t, &expires, got.ExpiresOn)
	})

	t.Run("expiry moved before stored notBefore", func(t *testing.T) {
		_, err := UpdatePropertiesParams{ExpiresOn: hlp.Ptr(notBefore.Add(-time.Hour))}.apply(stored)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("notBefore moved onto stored expiry", func(t *testing.T) {
		_, err := UpdatePropertiesParams{NotBefore: hlp.Ptr(expires)}.apply(stored)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("both ends moved together", func(t *testing.T) {
		later := expires.Add(48 * time.Hour)
		got, err := UpdatePropertiesParams{NotBefore: hlp.Ptr(expires), ExpiresOn: &later}.apply(stored)
		require.NoError(t, err)
		require.Equal(t, &later, got.ExpiresOn)
	})

	t.Run("only one end tells changesWindow", func(t *testing.T) {
		require.True(t, UpdatePropertiesParams{ExpiresOn: &expires}.changesWindow())
		require.True(t, UpdatePropertiesParams{NotBefore: &notBefore}.changesWindow())
		require.False(t, UpdatePropertiesParams{NotBefore: &notBefore, ExpiresOn: &expires}.changesWindow())
		require.False(t, UpdatePropertiesParams{Enabled: hlp.Ptr(true)}.changesWindow())
	})
}
