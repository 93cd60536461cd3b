package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nicjohnson145/kvgate/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestStorageIntegration(t *testing.T) {
	execute := func(t *testing.T) {
		store, cleanup, err := NewFromEnv(zerolog.New(os.Stdout).Level(zerolog.Disabled))
		require.NoError(t, err)
		t.Cleanup(cleanup)

		ctx := context.Background()
		base := time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

		events := []*AuditEvent{
			{Operation: "SetSecret", SecretName: "db-password", Subject: "alice", Status: 200, RequestID: "req-1", CreatedAt: base},
			{Operation: "DeleteSecret", SecretName: "db-password", Subject: "alice", Status: 200, RequestID: "req-2", CreatedAt: base.Add(time.Minute)},
			{Operation: "SetSecret", SecretName: "api-key", Subject: "bob", Status: 400, RequestID: "req-3", CreatedAt: base.Add(2 * time.Minute)},
		}
		for _, e := range events {
			require.NoError(t, store.WriteAuditEvent(ctx, e))
			require.NotEmpty(t, e.ID)
		}

		// Read one back
		got, err := store.ReadAuditEvent(ctx, events[0].ID)
		require.NoError(t, err)
		require.Equal(t, *events[0], *got)

		_, err = store.ReadAuditEvent(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)

		// Newest first
		all, err := store.ListAuditEvents(ctx, AuditFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, "req-3", all[0].RequestID)
		require.Equal(t, "req-1", all[2].RequestID)

		// Filtered by name
		named, err := store.ListAuditEvents(ctx, AuditFilter{SecretName: "db-password"})
		require.NoError(t, err)
		require.Len(t, named, 2)
		require.Equal(t, "DeleteSecret", named[0].Operation)

		// Limited
		limited, err := store.ListAuditEvents(ctx, AuditFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, limited, 1)

		// Prune everything older than the last event
		removed, err := store.PruneAuditEvents(ctx, base.Add(2*time.Minute))
		require.NoError(t, err)
		require.Equal(t, int64(2), removed)

		all, err = store.ListAuditEvents(ctx, AuditFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, "api-key", all[0].SecretName)
	}

	t.Run("sqlite", func(t *testing.T) {
		t.Cleanup(func() {
			viper.Reset()
		})
		tmp := t.TempDir()
		viper.Set(config.AuditEnabled, true)
		viper.Set(config.StorageType, config.StorageKindSqlite.String())
		viper.Set(config.SqliteDBPath, tmp+"/audit.db")

		execute(t)
	})
}

func TestNewFromEnv_AuditDisabled(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
	})
	viper.Set(config.AuditEnabled, false)

	store, cleanup, err := NewFromEnv(zerolog.New(os.Stdout).Level(zerolog.Disabled))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.IsType(t, &Noop{}, store)
	require.NoError(t, store.WriteAuditEvent(context.Background(), &AuditEvent{}))

	events, err := store.ListAuditEvents(context.Background(), AuditFilter{})
	require.NoError(t, err)
	require.Empty(t, events)
}
