package sla

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/domain"
	"github.com/hamed0406/oncallsla/internal/promql"
)

// Source answers instant queries, substituting def when it has no data.
type Source interface {
	Query(ctx context.Context, expr string, at time.Time, def float64) promql.Result
}

// Recorder persists indicator records.
type Recorder interface {
	Record(ctx context.Context, ind *domain.Indicator) error
}

type Evaluator struct {
	Source   Source
	Store    Recorder
	Policies []Policy
	Logger   *zap.Logger
}

func NewEvaluator(src Source, store Recorder, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		Source:   src,
		Store:    store,
		Policies: DefaultPolicies(),
		Logger:   logger,
	}
}

// Tick evaluates every policy at now (truncated to whole seconds) and records
// one indicator per policy. A persistence error stops the tick and is returned.
func (e *Evaluator) Tick(ctx context.Context, now time.Time) ([]domain.Indicator, error) {
	at := time.Unix(now.Unix(), 0).UTC()
	tick := uuid.NewString()

	out := make([]domain.Indicator, 0, len(e.Policies))
	for _, p := range e.Policies {
		res := e.Source.Query(ctx, p.Query, at, p.Default)
		ind := p.Evaluate(res.Value, at)

		e.Logger.Debug("indicator_saving",
			zap.String("tick", tick),
			zap.String("name", ind.Name),
			zap.String("datetime", ind.DatetimeString()),
		)
		if err := e.Store.Record(ctx, &ind); err != nil {
			return out, fmt.Errorf("record %s: %w", ind.Name, err)
		}
		e.Logger.Info("indicator_saved",
			zap.String("tick", tick),
			zap.String("name", ind.Name),
			zap.Float64("slo", ind.SLO),
			zap.Float64("value", ind.Value),
			zap.Bool("is_bad", ind.IsBad),
			zap.Bool("defaulted", res.Defaulted),
		)
		out = append(out, ind)
	}
	return out, nil
}
