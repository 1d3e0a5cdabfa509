package probe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Metrics is the part of the metrics registry the prober writes to.
type Metrics interface {
	IncTotal()
	IncSuccess()
	IncFail()
	SetDuration(seconds float64)
}

// Result describes one probe attempt. It is only used for logging and tests.
type Result struct {
	Token      string
	StatusCode int // 0 when no response was received
	Duration   time.Duration
	Err        error
}

func (r Result) Success() bool { return r.Err == nil && r.StatusCode == http.StatusOK }

// Prober issues GET {BaseURL}/api/v0/search?keyword=<token> and records the
// outcome in Metrics.
type Prober struct {
	Client  *http.Client
	BaseURL string
	Metrics Metrics
	Tokens  *TokenSource
	Logger  *zap.Logger
}

// NewProber builds a prober. A zero timeout leaves the client without one.
func NewProber(baseURL string, timeout time.Duration, m Metrics, tokens *TokenSource, logger *zap.Logger) *Prober {
	if tokens == nil {
		tokens = NewTokenSource(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Metrics: m,
		Tokens:  tokens,
		Logger:  logger,
	}
}

// Probe runs a single attempt. Exactly one of the success/fail counters moves
// per call, the total counter moves before the request is sent, and the
// duration gauge is set on every path. Failures are never returned.
func (p *Prober) Probe(ctx context.Context) Result {
	p.Metrics.IncTotal()

	res := Result{Token: p.Tokens.Next()}
	target := p.BaseURL + "/api/v0/search?keyword=" + url.QueryEscape(res.Token)

	start := time.Now()
	defer func() {
		p.Metrics.SetDuration(res.Duration.Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		p.Logger.Error("probe_failed", zap.String("url", target), zap.Error(err))
		p.Metrics.IncFail()
		return res
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		p.Logger.Error("probe_failed", zap.String("url", target), zap.Error(err))
		p.Metrics.IncFail()
		return res
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	res.StatusCode = resp.StatusCode
	res.Duration = time.Since(start)

	p.Logger.Info("probe_result",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Float64("duration_seconds", res.Duration.Seconds()),
	)
	if res.Success() {
		p.Metrics.IncSuccess()
	} else {
		p.Metrics.IncFail()
	}
	return res
}
