package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenLoop(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := New("alice", now, time.Hour)
	key := []byte(`some-big-uuid`)

	tokenStr, err := GenerateJWT(key, token)
	require.NoError(t, err)

	outToken, err := ParseJWT(tokenStr, key)
	require.NoError(t, err)

	require.Equal(t, &token, outToken)

	exp, err := ExtractExpiration(tokenStr)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())
}

func TestParseJWT(t *testing.T) {
	key := []byte(`some-big-uuid`)
	now := time.Now()

	t.Run("wrong key", func(t *testing.T) {
		tokenStr, err := GenerateJWT(key, New("alice", now, time.Hour))
		require.NoError(t, err)

		_, err = ParseJWT(tokenStr, []byte(`some-other-key`))
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tokenStr, err := GenerateJWT(key, New("alice", now.Add(-2*time.Hour), time.Hour))
		require.NoError(t, err)

		_, err = ParseJWT(tokenStr, key)
		require.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		tokenStr, err := GenerateJWT(key, New("", now, time.Hour))
		require.NoError(t, err)

		_, err = ParseJWT(tokenStr, key)
		require.Error(t, err)
	})
}
