package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/domain"
	"github.com/hamed0406/oncallsla/internal/repo"
)

var _ repo.IndicatorStore = (*Store)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS indicators (
  datetime TIMESTAMP        NOT NULL DEFAULT now(),
  name     VARCHAR(255)     NOT NULL,
  slo      DOUBLE PRECISION NOT NULL,
  value    DOUBLE PRECISION NOT NULL,
  is_bad   BOOLEAN          NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS idx_indicators_name_datetime ON indicators (name, datetime);
`

// duplicate_database
const codeDuplicateDatabase = "42P04"

var connectTimeout = 5 * time.Second

// Store keeps one connection for the lifetime of the process. A dropped
// connection is not re-established.
type Store struct {
	conn     *pgx.Conn
	database string
	log      *zap.Logger
}

// Open connects to dsn. When adminDSN is set, the database named in dsn is
// first created through adminDSN if it does not exist yet.
func Open(ctx context.Context, adminDSN, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if adminDSN != "" {
		if err := ensureDatabase(ctx, adminDSN, cfg.Database, log); err != nil {
			return nil, err
		}
	}

	ctxConn, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	log.Info("db_connecting", zap.String("host", cfg.Host), zap.String("database", cfg.Database))
	conn, err := pgx.ConnectConfig(ctxConn, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := conn.Ping(ctxConn); err != nil {
		return nil, multierr.Append(fmt.Errorf("ping: %w", err), conn.Close(ctx))
	}
	return &Store{conn: conn, database: cfg.Database, log: log}, nil
}

func ensureDatabase(ctx context.Context, adminDSN, name string, log *zap.Logger) (err error) {
	if name == "" {
		return errors.New("dsn has no database name")
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	admin, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("connect admin: %w", err)
	}
	defer func() { err = multierr.Append(err, admin.Close(ctx)) }()

	var exists bool
	if err := admin.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("lookup database: %w", err)
	}
	if exists {
		return nil
	}

	log.Info("db_create", zap.String("database", name))
	if _, err := admin.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeDuplicateDatabase {
			return nil
		}
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

func (s *Store) Bootstrap(ctx context.Context) error {
	s.log.Info("db_init", zap.String("database", s.database))
	if _, err := s.conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record inserts ind in its own transaction.
func (s *Store) Record(ctx context.Context, ind *domain.Indicator) error {
	err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO indicators (datetime, name, slo, value, is_bad)
			 VALUES ($1, $2, $3, $4, $5)`,
			ind.Datetime.UTC(), ind.Name, ind.SLO, ind.Value, ind.IsBad,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert indicator: %w", err)
	}
	return nil
}

func (s *Store) Summary(ctx context.Context, from, to time.Time) ([]domain.IndicatorSummary, error) {
	rows, err := s.conn.Query(ctx, `
SELECT name,
       COUNT(*),
       COUNT(*) FILTER (WHERE is_bad)
  FROM indicators
 WHERE datetime >= $1 AND datetime < $2
 GROUP BY name
 ORDER BY name`, from.UTC(), to.UTC())
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

func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.conn.Close(ctx)
}
