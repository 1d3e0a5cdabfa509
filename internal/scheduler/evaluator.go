package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/domain"
)

// Evaluator is satisfied by *sla.Evaluator.
type Evaluator interface {
	Tick(ctx context.Context, now time.Time) ([]domain.Indicator, error)
}

// EvalRunner runs an evaluation tick, then sleeps the full Interval.
type EvalRunner struct {
	Logger    *zap.Logger
	Evaluator Evaluator
	Interval  time.Duration
	Now       func() time.Time
}

func NewEvalRunner(logger *zap.Logger, e Evaluator, interval time.Duration) *EvalRunner {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &EvalRunner{Logger: logger, Evaluator: e, Interval: interval, Now: time.Now}
}

// Run returns nil when ctx is cancelled and the tick error otherwise; tick
// errors are persistence failures and end the loop.
func (r *EvalRunner) Run(ctx context.Context) error {
	r.Logger.Info("evaluator_started")
	for {
		inds, err := r.Evaluator.Tick(ctx, r.Now())
		if err != nil {
			if ctx.Err() != nil {
				r.Logger.Info("evaluator_stopped")
				return nil
			}
			r.Logger.Error("evaluator_tick_failed", zap.Error(err))
			return err
		}
		bad := 0
		for _, ind := range inds {
			if ind.IsBad {
				bad++
			}
		}
		r.Logger.Info("evaluator_tick_done",
			zap.Int("indicators", len(inds)),
			zap.Int("bad", bad),
		)

		r.Logger.Info("evaluator_waiting", zap.Duration("interval", r.Interval))
		if !sleep(ctx, r.Interval) {
			r.Logger.Info("evaluator_stopped")
			return nil
		}
	}
}
