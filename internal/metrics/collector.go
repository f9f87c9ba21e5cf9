// Package metrics exposes the counters and histograms of the bigcalc tool in
// Prometheus format, together with runtime memory readings.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigint"
)

// Namespace prefixes every metric name.
const Namespace = "bigcalc"

// Case outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeMismatch = "mismatch"
)

// Collector owns a private registry so several instances can coexist, which
// keeps tests independent.
type Collector struct {
	registry *prometheus.Registry

	cases         *prometheus.CounterVec
	caseDuration  *prometheus.HistogramVec
	evaluations   *prometheus.CounterVec
	evalDuration  *prometheus.HistogramVec
	scrapes       prometheus.Counter
	activeScrapes prometheus.Gauge
}

// NewCollector creates and registers every metric.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "verify_cases_total",
			Help:      "Verification cases evaluated, by operation and outcome.",
		}, []string{"op", "outcome"}),
		caseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "verify_engine_seconds",
			Help:      "Engine time per verification case.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"op"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evaluations_total",
			Help:      "One-shot and interactive evaluations, by operation and status.",
		}, []string{"op", "status"}),
		evalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluation_seconds",
			Help:      "Engine time per evaluation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		scrapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "metrics_requests_total",
			Help:      "Requests served by the metrics endpoint.",
		}),
		activeScrapes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "metrics_active_requests",
			Help:      "Metrics requests currently in flight.",
		}),
	}

	mem := NewRuntimeSampler(time.Second)
	c.registry.MustRegister(
		c.cases, c.caseDuration, c.evaluations, c.evalDuration, c.scrapes, c.activeScrapes,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "karatsuba_threshold_limbs",
			Help:      "Current Karatsuba cutover in 64-bit limbs.",
		}, func() float64 { return float64(bigint.KaratsubaThreshold()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Bytes of allocated heap objects.",
		}, func() float64 { return float64(mem.Sample().HeapAlloc) }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveCase records one verification case. It is safe for concurrent use.
func (c *Collector) ObserveCase(op string, elapsed time.Duration, err error, mismatch bool) {
	outcome := OutcomeOK
	switch {
	case mismatch:
		outcome = OutcomeMismatch
	case err != nil:
		outcome = OutcomeRejected
	}
	c.cases.WithLabelValues(op, outcome).Inc()
	c.caseDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveEval records one evaluation.
func (c *Collector) ObserveEval(op string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.evaluations.WithLabelValues(op, status).Inc()
	c.evalDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// IncrementActiveRequests marks the start of a metrics request.
func (c *Collector) IncrementActiveRequests() {
	c.activeScrapes.Inc()
	c.scrapes.Inc()
}

// DecrementActiveRequests marks the end of a metrics request.
func (c *Collector) DecrementActiveRequests() { c.activeScrapes.Dec() }

// Registry returns the registry holding every metric.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
