package promql

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"go.uber.org/zap"
)

var errNoData = errors.New("empty result")

// Result is a query value together with whether the default was used.
type Result struct {
	Value     float64
	Defaulted bool
}

// Client runs instant queries against the Prometheus HTTP API.
type Client struct {
	api    v1.API
	logger *zap.Logger
}

func New(baseURL string, logger *zap.Logger) (*Client, error) {
	c, err := api.NewClient(api.Config{Address: baseURL})
	if err != nil {
		return nil, fmt.Errorf("prometheus client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: v1.NewAPI(c), logger: logger}, nil
}

// QueryMetric returns the first value of expr evaluated at at, or def on
// transport errors, unreadable bodies and empty results.
func (c *Client) QueryMetric(ctx context.Context, expr string, at time.Time, def float64) float64 {
	return c.Query(ctx, expr, at, def).Value
}

// Query is QueryMetric with the fallback made visible. Errors are logged and
// never returned.
func (c *Client) Query(ctx context.Context, expr string, at time.Time, def float64) Result {
	v, err := c.query(ctx, expr, at)
	if err != nil {
		c.logger.Warn("metric_query_defaulted",
			zap.String("query", expr),
			zap.Time("at", at),
			zap.Float64("default", def),
			zap.Error(err),
		)
		return Result{Value: def, Defaulted: true}
	}
	return Result{Value: v}
}

func (c *Client) query(ctx context.Context, expr string, at time.Time) (float64, error) {
	val, warnings, err := c.api.Query(ctx, expr, at)
	if err != nil {
		return 0, err
	}
	if len(warnings) > 0 {
		c.logger.Info("metric_query_warnings", zap.String("query", expr), zap.Strings("warnings", warnings))
	}
	return firstValue(val)
}

func firstValue(val model.Value) (float64, error) {
	var v model.SampleValue
	switch t := val.(type) {
	case model.Vector:
		if len(t) == 0 {
			return 0, errNoData
		}
		v = t[0].Value
	case *model.Scalar:
		if t == nil {
			return 0, errNoData
		}
		v = t.Value
	case model.Matrix:
		if len(t) == 0 || len(t[0].Values) == 0 {
			return 0, errNoData
		}
		v = t[0].Values[len(t[0].Values)-1].Value
	case nil:
		return 0, errNoData
	default:
		return 0, fmt.Errorf("unsupported result type %s", val.Type())
	}
	f := float64(v)
	if math.IsNaN(f) {
		return 0, errors.New("NaN sample")
	}
	return f, nil
}
