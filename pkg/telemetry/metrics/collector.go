package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metricgov/metricgov/pkg/config"
)

// Outcome labels for validation results.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// Collector owns the Prometheus self-instrumentation for metricgov:
// how many emissions were validated, what happened to them, and how
// analysis runs behave over time. All metrics share the configured
// namespace and subsystem.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	validationsTotal   *prometheus.CounterVec
	emissionsForwarded prometheus.Counter
	emissionsDropped   prometheus.Counter
	schemaReloadsTotal *prometheus.CounterVec
	schemaMetricsCount prometheus.Gauge

	analysisRunsTotal   prometheus.Counter
	analysisDuration    prometheus.Histogram
	analysisCombination prometheus.Gauge
}

// NewCollector creates the collector and registers every metric with
// the given registry. A nil registry gets a fresh private one.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validations_total",
			Help:      "Emission validations by outcome and failure kind.",
		}, []string{"outcome", "kind"}),

		emissionsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "emissions_forwarded_total",
			Help:      "Emissions forwarded to the sink.",
		}),

		emissionsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "emissions_dropped_total",
			Help:      "Emissions dropped after a validation failure.",
		}),

		schemaReloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "schema_reloads_total",
			Help:      "Schema reload attempts by result.",
		}, []string{"result"}),

		schemaMetricsCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "schema_metrics",
			Help:      "Metric definitions in the active schema.",
		}),

		analysisRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "analysis_runs_total",
			Help:      "Completed cardinality analysis runs.",
		}),

		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of cardinality analysis runs.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}),

		analysisCombination: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "analysis_total_combinations",
			Help:      "Total possible custom metrics reported by the latest analysis run.",
		}),
	}

	registry.MustRegister(
		c.validationsTotal,
		c.emissionsForwarded,
		c.emissionsDropped,
		c.schemaReloadsTotal,
		c.schemaMetricsCount,
		c.analysisRunsTotal,
		c.analysisDuration,
		c.analysisCombination,
	)

	return c
}

// RecordValidation records one emission validation. kind is the failure
// kind label, or empty for a success.
func (c *Collector) RecordValidation(outcome, kind string) {
	if !c.config.Enabled {
		return
	}
	if kind == "" {
		kind = "none"
	}
	c.validationsTotal.WithLabelValues(outcome, kind).Inc()
}

// RecordForwarded records an emission that reached the sink.
func (c *Collector) RecordForwarded() {
	if !c.config.Enabled {
		return
	}
	c.emissionsForwarded.Inc()
}

// RecordDropped records an emission suppressed by drop mode.
func (c *Collector) RecordDropped() {
	if !c.config.Enabled {
		return
	}
	c.emissionsDropped.Inc()
}

// RecordSchemaReload records a schema reload attempt.
func (c *Collector) RecordSchemaReload(success bool) {
	if !c.config.Enabled {
		return
	}
	result := "success"
	if !success {
		result = "error"
	}
	c.schemaReloadsTotal.WithLabelValues(result).Inc()
}

// SetSchemaMetricCount updates the active-schema definition gauge.
func (c *Collector) SetSchemaMetricCount(n int) {
	if !c.config.Enabled {
		return
	}
	c.schemaMetricsCount.Set(float64(n))
}

// RecordAnalysisRun records one completed analysis run.
func (c *Collector) RecordAnalysisRun(duration time.Duration, totalCombinations int64) {
	if !c.config.Enabled {
		return
	}
	c.analysisRunsTotal.Inc()
	c.analysisDuration.Observe(duration.Seconds())
	c.analysisCombination.Set(float64(totalCombinations))
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving this collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
