package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nicjohnson145/hlp"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func requireViolations(t *testing.T, err error) []string {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Violations)
	return verr.Violations
}

func requireViolationAt(t *testing.T, err error, location string) {
	t.Helper()
	for _, v := range requireViolations(t, err) {
		if strings.HasPrefix(v, location+":") {
			return
		}
	}
	require.Failf(t, "missing violation", "no violation at %v in %v", location, err)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	testData := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "simple", input: "db-password", ok: true},
		{name: "digits", input: "0123", ok: true},
		{name: "max length", input: strings.Repeat("a", 127), ok: true},
		{name: "empty", input: "", ok: false},
		{name: "too long", input: strings.Repeat("a", 128), ok: false},
		{name: "underscore", input: "db_password", ok: false},
		{name: "slash", input: "db/password", ok: false},
		{name: "space", input: "db password", ok: false},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateName(tc.input)
			if tc.ok {
				require.NoError(t, err)
			} else {
				requireViolations(t, err)
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	require.NoError(t, v.ValidateVersion(""))
	require.NoError(t, v.ValidateVersion("0123456789abcdef"))
	require.NoError(t, v.ValidateVersion(strings.Repeat("a", 64)))
	requireViolations(t, v.ValidateVersion(strings.Repeat("a", 65)))
	requireViolations(t, v.ValidateVersion("1.0"))
}

func TestValidateSetSecret(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	t.Run("minimal", func(t *testing.T) {
		require.NoError(t, v.ValidateSetSecret([]byte(`{"value":"hunter2"}`)))
	})

	t.Run("everything", func(t *testing.T) {
		body := `{
			"value": "hunter2",
			"contentType": "text/plain",
			"enabled": true,
			"notBefore": "2095-05-15T15:30:00Z",
			"expiresOn": "2096-05-15T15:30:00Z",
			"tags": {"env": "prod"}
		}`
		require.NoError(t, v.ValidateSetSecret([]byte(body)))
	})

	t.Run("empty body", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret(nil), "/")
	})

	t.Run("not json", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"value":`)), "/")
	})

	t.Run("missing value", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"contentType":"text/plain"}`)), "/")
	})

	t.Run("unknown field", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"value":"x","colour":"red"}`)), "/")
	})

	t.Run("wrong type", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"value":"x","enabled":"yes"}`)), "/enabled")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"value":"x","expiresOn":"tomorrow"}`)), "/expiresOn")
	})

	t.Run("value too large", func(t *testing.T) {
		body := fmt.Sprintf(`{"value":%q}`, strings.Repeat("a", MaxValueBytes+1))
		requireViolationAt(t, v.ValidateSetSecret([]byte(body)), "/value")
	})

	t.Run("value too large in bytes only", func(t *testing.T) {
		body := fmt.Sprintf(`{"value":%q}`, strings.Repeat("é", MaxValueBytes/2+1))
		requireViolationAt(t, v.ValidateSetSecret([]byte(body)), "/value")
	})

	t.Run("tag value too long", func(t *testing.T) {
		body := fmt.Sprintf(`{"value":"x","tags":{"env":%q}}`, strings.Repeat("a", 257))
		requireViolationAt(t, v.ValidateSetSecret([]byte(body)), "/tags/env")
	})

	t.Run("too many tags", func(t *testing.T) {
		tags := []string{}
		for i := 0; i < 16; i++ {
			tags = append(tags, fmt.Sprintf(`"t%d":"v"`, i))
		}
		body := fmt.Sprintf(`{"value":"x","tags":{%s}}`, strings.Join(tags, ","))
		requireViolationAt(t, v.ValidateSetSecret([]byte(body)), "/tags")
	})

	t.Run("reserved tag", func(t *testing.T) {
		requireViolationAt(t, v.ValidateSetSecret([]byte(`{"value":"x","tags":{"kvgate:enabled":"true"}}`)), "/tags/kvgate:enabled")
	})

	t.Run("window out of order", func(t *testing.T) {
		body := `{"value":"x","notBefore":"2096-05-15T15:30:00Z","expiresOn":"2095-05-15T15:30:00Z"}`
		requireViolationAt(t, v.ValidateSetSecret([]byte(body)), "/notBefore")
	})

	t.Run("violations are collected together", func(t *testing.T) {
		body := fmt.Sprintf(`{"value":"x","contentType":%q,"enabled":"yes"}`, strings.Repeat("a", 256))
		require.GreaterOrEqual(t, len(requireViolations(t, v.ValidateSetSecret([]byte(body)))), 2)
	})
}

func TestValidateUpdateProperties(t *testing.T) {
	t.Parallel()

	v := newValidator(t)

	require.NoError(t, v.ValidateUpdateProperties([]byte(`{"enabled":false}`)))
	require.NoError(t, v.ValidateUpdateProperties([]byte(`{"tags":{}}`)))

	requireViolationAt(t, v.ValidateUpdateProperties([]byte(`{}`)), "/")
	requireViolationAt(t, v.ValidateUpdateProperties([]byte(`{"value":"x"}`)), "/")
	requireViolationAt(t, v.ValidateUpdateProperties([]byte(`{"tags":{"kvgate:x":"y"}}`)), "/tags/kvgate:x")
}

func TestCheckWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

	require.NoError(t, CheckWindow(nil, nil))
	require.NoError(t, CheckWindow(hlp.Ptr(now), nil))
	require.NoError(t, CheckWindow(hlp.Ptr(now), hlp.Ptr(now.Add(time.Hour))))
	requireViolations(t, CheckWindow(hlp.Ptr(now), hlp.Ptr(now)))
	requireViolations(t, CheckWindow(hlp.Ptr(now.Add(time.Hour)), hlp.Ptr(now)))
}
