package sla

import (
	"math"
	"time"

	"github.com/hamed0406/oncallsla/internal/domain"
	"github.com/hamed0406/oncallsla/internal/metrics"
)

// Policy turns one metric into an indicator. SLO is the stored objective;
// Bad is the actual verdict and does not have to compare against SLO.
type Policy struct {
	Name    string
	Query   string
	SLO     float64
	Default float64 // used when the source has no data; chosen so it reads as bad
	// Truncate drops the fractional part before classification.
	Truncate bool
	Bad      func(value float64) bool
}

// Coerce applies the policy's numeric conversion.
func (p Policy) Coerce(v float64) float64 {
	if p.Truncate {
		return math.Trunc(v)
	}
	return v
}

// Evaluate builds the indicator record for an observed value.
func (p Policy) Evaluate(v float64, at time.Time) domain.Indicator {
	v = p.Coerce(v)
	return domain.Indicator{
		Datetime: at,
		Name:     p.Name,
		SLO:      p.SLO,
		Value:    v,
		IsBad:    p.Bad(v),
	}
}

func lessThan(limit float64) func(float64) bool {
	return func(v float64) bool { return v < limit }
}

func greaterThan(limit float64) func(float64) bool {
	return func(v float64) bool { return v > limit }
}

// DefaultPolicies are the prober indicators. Missing data falls back to
// values that classify as bad.
func DefaultPolicies() []Policy {
	return []Policy{
		{
			Name:     metrics.ProbeSuccessTotal,
			Query:    "increase(" + metrics.ProbeSuccessTotal + "[1m])",
			SLO:      1,
			Default:  0,
			Truncate: true,
			Bad:      lessThan(1),
		},
		{
			Name:     metrics.ProbeFailTotal,
			Query:    "increase(" + metrics.ProbeFailTotal + "[1m])",
			SLO:      0,
			Default:  100,
			Truncate: true,
			Bad:      greaterThan(0),
		},
		{
			Name:    metrics.ProbeDurationSeconds,
			Query:   metrics.ProbeDurationSeconds,
			SLO:     0.1,
			Default: 2,
			Bad:     greaterThan(0.1),
		},
	}
}
