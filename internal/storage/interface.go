package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nicjohnson145/kvgate/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite" // import sqlite driver
)

var ErrNotFound = errors.New("not found")

type Client interface {
	WriteAuditEvent(ctx context.Context, event *AuditEvent) error
	ReadAuditEvent(ctx context.Context, id string) (*AuditEvent, error)
	ListAuditEvents(ctx context.Context, filter AuditFilter) ([]AuditEvent, error)
	PruneAuditEvents(ctx context.Context, before time.Time) (int64, error)
}

func NewFromEnv(logger zerolog.Logger) (Client, func(), error) {
	cleanup := func() {}

	if !viper.GetBool(config.AuditEnabled) {
		logger.Warn().Msg("audit trail disabled, mutating calls will not be recorded")
		return NewNoop(), cleanup, nil
	}

	kind, err := config.ParseStorageKind(viper.GetString(config.StorageType))
	if err != nil {
		return nil, cleanup, err
	}

	if kind != config.StorageKindSqlite {
		return nil, cleanup, fmt.Errorf("unhandled storage type of '%v'", kind)
	}

	path := viper.GetString(config.SqliteDBPath)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error opening audit DB: %w", err)
	}
	cleanup = func() {
		db.Close()
	}

	logger.Info().Str("path", path).Msg("migrating audit database")
	if err := migrateSqlite(logger, db); err != nil {
		return nil, cleanup, err
	}

	store, err := NewSqlite(SqliteConfig{
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		return nil, cleanup, fmt.Errorf("error initializing sqlite client: %w", err)
	}
	return store, cleanup, nil
}
