package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sqlite-migrations/*.sql
var sqliteMigrations embed.FS

// migrateSqlite brings the audit schema up to date, refusing to run against a schema left dirty by a failed migration
func migrateSqlite(logger zerolog.Logger, db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{
		NoTxWrap: true,
	})
	if err != nil {
		return fmt.Errorf("error creating sqlite migration driver: %w", err)
	}

	source, err := iofs.New(sqliteMigrations, "sqlite-migrations")
	if err != nil {
		return fmt.Errorf("error reading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("error creating migrator: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info().Msg("fresh audit database, applying all migrations")
	case err != nil:
		return fmt.Errorf("error reading schema version: %w", err)
	case dirty:
		return fmt.Errorf("audit schema is dirty at version %d, fix it by hand before starting", version)
	default:
		logger.Debug().Uint("version", version).Msg("current audit schema version")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	return nil
}
