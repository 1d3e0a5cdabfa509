// cmd/preflight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/probe"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("config valid (probe every %s, evaluate every %s)", cfg.ProbeInterval(), cfg.EvalInterval()))

	ctx := context.Background()
	for name, target := range map[string]string{
		"PROBER_API_URL":     cfg.ProberAPIURL,
		"PROMETHEUS_API_URL": cfg.PrometheusURL,
	} {
		s := probe.CheckTargetDNS(ctx, target)
		if s.Class != probe.DNSResolves {
			warn(fmt.Sprintf("%s host %q does not resolve (%s) %s", name, s.Host, s.Class, s.ResolverError))
			continue
		}
		ok(fmt.Sprintf("%s host %q resolves", name, s.Host))
	}

	if cfg.ProbeTimeout() == 0 {
		warn("PROBER_HTTP_TIMEOUT_MS is 0: a hung probe blocks the loop until the transport gives up.")
	}
	if len(cfg.MetricsAPIKeys) == 0 {
		warn("METRICS_API_KEYS empty: /metrics is open to anyone who can reach port " + fmt.Sprint(cfg.MetricsPort))
	}

	switch cfg.DBDriver {
	case "postgres":
		if strings.TrimSpace(cfg.DBPassword) == "" {
			warn("DB_PASSWORD empty; relying on trust/peer auth.")
		}
		s := probe.CheckTargetDNS(ctx, cfg.DBHost)
		if s.Class != probe.DNSResolves {
			warn(fmt.Sprintf("DB_HOST %q does not resolve (%s)", cfg.DBHost, s.Class))
		} else {
			ok("DB_HOST=" + cfg.DBHost)
		}
	case "sqlite":
		ok("SQLITE_PATH=" + cfg.SQLitePath)
	case "memory":
		warn("DB_DRIVER=memory: indicators are not persisted.")
	}

	ok("preflight passed")
}
