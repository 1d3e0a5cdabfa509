package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/probe"
)

// Prober is satisfied by *probe.Prober.
type Prober interface {
	Probe(ctx context.Context) probe.Result
}

// ProbeRunner probes, then sleeps Interval, forever. The period is therefore
// the probe duration plus Interval.
type ProbeRunner struct {
	Logger   *zap.Logger
	Prober   Prober
	Interval time.Duration
}

func NewProbeRunner(logger *zap.Logger, p Prober, interval time.Duration) *ProbeRunner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ProbeRunner{Logger: logger, Prober: p, Interval: interval}
}

// Run stops when ctx is cancelled. An in-flight probe is abandoned.
func (r *ProbeRunner) Run(ctx context.Context) {
	for {
		r.Logger.Info("prober_run")
		out := r.Prober.Probe(ctx)
		r.Logger.Debug("prober_checked",
			zap.Bool("success", out.Success()),
			zap.Int("status", out.StatusCode),
			zap.Float64("duration_seconds", out.Duration.Seconds()),
		)

		r.Logger.Info("prober_waiting", zap.Duration("interval", r.Interval))
		if !sleep(ctx, r.Interval) {
			r.Logger.Info("prober_stopped")
			return
		}
	}
}
