package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/oncallsla/internal/domain"
	"github.com/hamed0406/oncallsla/internal/repo"
)

var _ repo.IndicatorStore = (*Store)(nil)

// datetime is stored as text in domain.DatetimeLayout, which sorts and
// compares chronologically.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS indicators (
	datetime TEXT    NOT NULL DEFAULT (datetime('now')),
	name     TEXT    NOT NULL,
	slo      REAL    NOT NULL,
	value    REAL    NOT NULL,
	is_bad   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_indicators_name_datetime ON indicators(name, datetime);`

// Store is a single-file indicator history. The file is created on open.
type Store struct {
	db     *sql.DB
	dbPath string
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // one long-lived handle
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// DBPath returns the database file path.
func (s *Store) DBPath() string { return s.dbPath }

func (s *Store) Bootstrap(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, ind *domain.Indicator) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO indicators (datetime, name, slo, value, is_bad) VALUES (?, ?, ?, ?, ?)`,
		ind.DatetimeString(), ind.Name, ind.SLO, ind.Value, ind.IsBad,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert indicator: %w", err)
	}
	return tx.Commit()
}

func (s *Store) Summary(ctx context.Context, from, to time.Time) ([]domain.IndicatorSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*), COALESCE(SUM(is_bad), 0)
		FROM indicators
		WHERE datetime >= ? AND datetime < ?
		GROUP BY name
		ORDER BY name`,
		domain.FormatDatetime(from), domain.FormatDatetime(to))
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var out []domain.IndicatorSummary
	for rows.Next() {
		var r domain.IndicatorSummary
		if err := rows.Scan(&r.Name, &r.Total, &r.Bad); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Records returns the stored rows oldest first.
func (s *Store) Records(ctx context.Context) ([]domain.Indicator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT datetime, name, slo, value, is_bad FROM indicators ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Indicator
	for rows.Next() {
		var (
			ts  string
			ind domain.Indicator
		)
		if err := rows.Scan(&ts, &ind.Name, &ind.SLO, &ind.Value, &ind.IsBad); err != nil {
			return nil, err
		}
		if ind.Datetime, err = time.ParseInLocation(domain.DatetimeLayout, ts, time.UTC); err != nil {
			return nil, fmt.Errorf("parse datetime %q: %w", ts, err)
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
