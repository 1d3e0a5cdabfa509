package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Exposed metric names. The SLA evaluator queries them by these names.
const (
	ProbeTotal           = "prober_get_search_info_total"
	ProbeSuccessTotal    = "prober_get_search_info_success_total"
	ProbeFailTotal       = "prober_get_search_info_fail_total"
	ProbeDurationSeconds = "prober_get_search_info_duration_seconds"
)

// Registry owns the prober's counters and gauge. Only the prober mutates it;
// the scrape handler and Snapshot read it.
type Registry struct {
	reg      *prometheus.Registry
	total    prometheus.Counter
	success  prometheus.Counter
	fail     prometheus.Counter
	duration prometheus.Gauge
}

// Snapshot is a point-in-time copy of the prober metrics.
type Snapshot struct {
	Total           float64
	Success         float64
	Fail            float64
	DurationSeconds float64
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: ProbeTotal,
			Help: "Total count of runs the search request oncall API",
		}),
		success: prometheus.NewCounter(prometheus.CounterOpts{
			Name: ProbeSuccessTotal,
			Help: "Total count of success runs search request",
		}),
		fail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: ProbeFailTotal,
			Help: "Total count of failed runs search request",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: ProbeDurationSeconds,
			Help: "Duration in seconds of runs the get search request",
		}),
	}
	r.reg.MustRegister(
		r.total, r.success, r.fail, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) IncTotal() { r.total.Inc() }
func (r *Registry) IncSuccess() { r.success.Inc() }
func (r *Registry) IncFail() { r.fail.Inc() }

// SetDuration overwrites the gauge with the latest measurement.
func (r *Registry) SetDuration(seconds float64) { r.duration.Set(seconds) }

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Total:           read(r.total),
		Success:         read(r.success),
		Fail:            read(r.fail),
		DurationSeconds: read(r.duration),
	}
}

// Gatherer exposes the underlying registry read-only.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves this registry in the text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func read(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0
	}
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	}
	return 0
}
