package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	hsqlx "github.com/nicjohnson145/hlp/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type SqliteConfig struct {
	Logger zerolog.Logger
	DB     *sql.DB

	// for unit tests
	NowFunc func() time.Time
}

func NewSqlite(conf SqliteConfig) (*Sqlite, error) {
	s := &Sqlite{
		log:     conf.Logger,
		db:      sqlx.NewDb(conf.DB, "sqlite"),
		nowFunc: conf.NowFunc,
	}
	if s.nowFunc == nil {
		s.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}
	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

var _ Client = (*Sqlite)(nil)

type Sqlite struct {
	log     zerolog.Logger
	db      *sqlx.DB
	nowFunc func() time.Time
}

func (s *Sqlite) init() error {
	if _, err := s.db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("error enabling wal journal: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("error setting busy timeout: %w", err)
	}

	return nil
}

// WriteAuditEvent fills in ID and CreatedAt when they are unset
func (s *Sqlite) WriteAuditEvent(ctx context.Context, event *AuditEvent) error {
	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.nowFunc()
	}

	stmt := `
		INSERT INTO
			audit_event
			(
				id,
				operation,
				secret_name,
				subject,
				status,
				request_id,
				created_at
			)
		VALUES
			(
				:id,
				:operation,
				:secret_name,
				:subject,
				:status,
				:request_id,
				:created_at
			)
	`

	if _, err := s.db.NamedExecContext(ctx, stmt, toDB(event)); err != nil {
		return fmt.Errorf("error inserting: %w", err)
	}

	return nil
}

func (s *Sqlite) ReadAuditEvent(ctx context.Context, id string) (*AuditEvent, error) {
	stmt := `
		SELECT
			*
		FROM
			audit_event
		WHERE
			id = :id
	`
	args := map[string]any{
		"id": id,
	}

	rows, err := hsqlx.RequireExactSelectNamedCtx[dbAuditEvent](ctx, 1, s.db, stmt, args)
	if err != nil {
		if errors.Is(err, hsqlx.ErrNotFoundError) {
			return nil, fmt.Errorf("audit event %v: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying: %w", err)
	}

	event := rows[0].toEvent()
	return &event, nil
}

// ListAuditEvents returns newest first
func (s *Sqlite) ListAuditEvents(ctx context.Context, filter AuditFilter) ([]AuditEvent, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	stmt := `
		SELECT
			*
		FROM
			audit_event
		WHERE
			(:secret_name = '' OR secret_name = :secret_name)
		ORDER BY
			created_at DESC,
			id DESC
		LIMIT :limit
	`
	args := map[string]any{
		"secret_name": filter.SecretName,
		"limit":       limit,
	}

	query, qargs, err := sqlx.Named(stmt, args)
	if err != nil {
		return nil, fmt.Errorf("error binding query: %w", err)
	}

	rows := []dbAuditEvent{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), qargs...); err != nil {
		return nil, fmt.Errorf("error querying: %w", err)
	}

	out := make([]AuditEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEvent())
	}
	return out, nil
}

func (s *Sqlite) PruneAuditEvents(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	err := hsqlx.WithTransaction(s.db, func(txn *sqlx.Tx) error {
		res, err := txn.ExecContext(ctx, "DELETE FROM audit_event WHERE created_at < ?", before.UnixMilli())
		if err != nil {
			return fmt.Errorf("error deleting: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error counting deleted rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error pruning: %w", err)
	}

	return removed, nil
}
