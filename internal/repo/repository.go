package repo

import (
	"context"
	"time"

	"github.com/hamed0406/oncallsla/internal/domain"
)

// IndicatorStore is the append-only history of SLO judgments.
type IndicatorStore interface {
	// Bootstrap creates the destination schema if it is missing. Safe to call
	// more than once.
	Bootstrap(ctx context.Context) error
	// Record inserts one record and commits it.
	Record(ctx context.Context, ind *domain.Indicator) error
	// Summary counts records and bad records per name with from <= datetime < to.
	Summary(ctx context.Context, from, to time.Time) ([]domain.IndicatorSummary, error)
	Close() error
}
