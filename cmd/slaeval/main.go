package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/logging"
	"github.com/hamed0406/oncallsla/internal/promql"
	"github.com/hamed0406/oncallsla/internal/repo/storage"
	"github.com/hamed0406/oncallsla/internal/scheduler"
	"github.com/hamed0406/oncallsla/internal/sla"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger("slaeval", cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without its store the evaluator has nothing to do: fail fast.
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("db_connect_failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer store.Close()
	if err := store.Bootstrap(ctx); err != nil {
		logger.Fatal("db_init_failed", zap.Error(err))
	}

	src, err := promql.New(cfg.PrometheusURL, logger)
	if err != nil {
		logger.Fatal("prometheus_client_failed", zap.Error(err))
	}

	logger.Info("sla_checker_start",
		zap.String("prometheus", cfg.PrometheusURL),
		zap.String("driver", cfg.DBDriver),
		zap.Duration("interval", cfg.EvalInterval()),
	)
	ev := sla.NewEvaluator(src, store, logger)
	if err := scheduler.NewEvalRunner(logger, ev, cfg.EvalInterval()).Run(ctx); err != nil {
		logger.Fatal("sla_checker_failed", zap.Error(err))
	}
	logger.Info("terminating")
}
