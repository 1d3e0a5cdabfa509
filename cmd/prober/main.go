package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/httpapi"
	"github.com/hamed0406/oncallsla/internal/logging"
	"github.com/hamed0406/oncallsla/internal/metrics"
	"github.com/hamed0406/oncallsla/internal/probe"
	"github.com/hamed0406/oncallsla/internal/scheduler"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger("prober", cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.New()
	api := httpapi.NewServer(logger, reg.Handler(), cfg.MetricsAPIKeys)
	go func() {
		if err := api.ListenAndServe(ctx, cfg.MetricsAddr()); err != nil {
			logger.Fatal("metrics_server_failed", zap.Error(err))
		}
	}()

	p := probe.NewProber(cfg.ProberAPIURL, cfg.ProbeTimeout(), reg, nil, logger)
	logger.Info("prober_start",
		zap.String("target", cfg.ProberAPIURL),
		zap.Int("port", cfg.MetricsPort),
		zap.Duration("interval", cfg.ProbeInterval()),
	)
	scheduler.NewProbeRunner(logger, p, cfg.ProbeInterval()).Run(ctx)
	logger.Info("terminating")
}
