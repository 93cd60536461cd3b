package pruner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPruner(t *testing.T) {
	t.Parallel()

	testData := []struct {
		name      string
		schedule  string
		retention time.Duration
		ok        bool
	}{
		{name: "descriptor", schedule: "@hourly", retention: time.Hour, ok: true},
		{name: "standard", schedule: "*/5 * * * *", retention: time.Hour, ok: true},
		{name: "bad schedule", schedule: "every so often", retention: time.Hour, ok: false},
		{name: "zero retention", schedule: "@hourly", retention: 0, ok: false},
	}
	for _, tc := range testData {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPruner(PrunerConfig{
				Logger:        zerolog.Nop(),
				StorageClient: storage.NewNoop(),
				Schedule:      tc.schedule,
				Retention:     tc.retention,
			})
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestPruneOnce(t *testing.T) {
	t.Parallel()

	now := time.Date(2095, time.May, 15, 15, 30, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			PruneAuditEvents(mock.Anything, now.Add(-720*time.Hour)).
			Return(int64(3), nil)

		p, err := NewPruner(PrunerConfig{
			Logger:        zerolog.Nop(),
			StorageClient: store,
			Schedule:      "@hourly",
			Retention:     720 * time.Hour,
			NowFunc: func() time.Time {
				return now
			},
		})
		require.NoError(t, err)

		removed, err := p.PruneOnce(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(3), removed)
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMockClient(t)
		store.
			EXPECT().
			PruneAuditEvents(mock.Anything, mock.Anything).
			Return(int64(0), errors.New("database is locked"))

		p, err := NewPruner(PrunerConfig{
			Logger:        zerolog.Nop(),
			StorageClient: store,
			Schedule:      "@hourly",
			Retention:     time.Hour,
		})
		require.NoError(t, err)

		_, err = p.PruneOnce(context.Background())
		require.Error(t, err)
	})
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	p, err := NewPruner(PrunerConfig{
		Logger:        zerolog.Nop(),
		StorageClient: storage.NewNoop(),
		Schedule:      "@hourly",
		Retention:     time.Hour,
	})
	require.NoError(t, err)

	p.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Stop(ctx))
}
