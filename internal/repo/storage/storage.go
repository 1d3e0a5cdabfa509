// Package storage picks the indicator store backend from configuration.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/repo"
	"github.com/hamed0406/oncallsla/internal/repo/memory"
	"github.com/hamed0406/oncallsla/internal/repo/postgres"
	"github.com/hamed0406/oncallsla/internal/repo/sqlite"
)

// Open connects to the configured backend. It does not bootstrap the schema.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (repo.IndicatorStore, error) {
	switch cfg.DBDriver {
	case "postgres":
		s, err := postgres.Open(ctx, cfg.PostgresDSN(cfg.DBAdminName), cfg.PostgresDSN(cfg.DBName), log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		log.Warn("store_memory", zap.String("note", "indicators are lost on exit"))
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}
