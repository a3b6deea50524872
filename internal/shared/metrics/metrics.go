package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

type Collector struct {
	registry              *prometheus.Registry
	evaluationsTotal      *prometheus.CounterVec
	violationsTotal       *prometheus.CounterVec
	evaluationDuration    prometheus.Histogram
	cacheLookupsTotal     *prometheus.CounterVec
	liveSessions          prometheus.Gauge
	designOperationsTotal *prometheus.CounterVec
}

// New creates the planet metrics and registers them on a fresh registry
func New() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planet_evaluations_total",
				Help: "Planet parameter evaluations by outcome",
			},
			[]string{"outcome"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planet_validation_violations_total",
				Help: "Constraint violations reported, by state component",
			},
			[]string{"component"},
		),
		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planet_evaluation_duration_seconds",
				Help:    "Time spent validating parameters and computing derived properties",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		cacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planet_report_cache_lookups_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
		liveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planet_live_sessions",
				Help: "Open live-editing WebSocket sessions",
			},
		),
		designOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planet_design_operations_total",
				Help: "Saved design operations by kind",
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		m.evaluationsTotal,
		m.violationsTotal,
		m.evaluationDuration,
		m.cacheLookupsTotal,
		m.liveSessions,
		m.designOperationsTotal,
	)

	return m
}

func (m *Collector) RecordEvaluation(outcome string, duration time.Duration) {
	m.evaluationsTotal.WithLabelValues(outcome).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
}

func (m *Collector) RecordViolations(component string, count int) {
	if count > 0 {
		m.violationsTotal.WithLabelValues(component).Add(float64(count))
	}
}

func (m *Collector) RecordCacheLookup(result string) {
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Collector) RecordDesignOperation(operation string) {
	m.designOperationsTotal.WithLabelValues(operation).Inc()
}

func (m *Collector) SessionOpened() {
	m.liveSessions.Inc()
}

func (m *Collector) SessionClosed() {
	m.liveSessions.Dec()
}

func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
