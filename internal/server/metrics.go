package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the measurement API.
// Each Metrics instance carries its own registry so that construction is
// repeatable (no global registration conflicts in tests).
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal   *prometheus.CounterVec
	activeRequests  prometheus.Gauge
	requestDuration *prometheus.HistogramVec

	measurementsTotal  *prometheus.CounterVec
	measurementErrors  *prometheus.CounterVec
	consistencyScore   prometheus.Histogram
	coordinationEffect prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics for the server.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certmeter_requests_total",
			Help: "Total number of HTTP requests processed, by path and status code.",
		}, []string{"path", "status"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "certmeter_active_requests",
			Help: "Number of HTTP requests currently in flight.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "certmeter_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		measurementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certmeter_measurements_total",
			Help: "Total number of measurements computed, by kind.",
		}, []string{"kind"}),
		measurementErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certmeter_measurement_errors_total",
			Help: "Total number of failed measurements, by kind and error class.",
		}, []string{"kind", "class"}),
		consistencyScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "certmeter_consistency_score",
			Help:    "Distribution of computed consistency scores.",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99, 1},
		}),
		coordinationEffect: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "certmeter_coordination_effect",
			Help:    "Distribution of computed coordination effects (gamma).",
			Buckets: []float64{0.5, 0.75, 0.9, 0.95, 1, 1.05, 1.1, 1.25, 1.5, 2},
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		m.measurementsTotal,
		m.measurementErrors,
		m.consistencyScore,
		m.coordinationEffect,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(path, status string, seconds float64) {
	m.requestsTotal.WithLabelValues(path, status).Inc()
	m.requestDuration.WithLabelValues(path).Observe(seconds)
}

// RecordConsistency records a successful consistency measurement.
func (m *Metrics) RecordConsistency(score float64) {
	m.measurementsTotal.WithLabelValues("consistency").Inc()
	m.consistencyScore.Observe(score)
}

// RecordCoordination records a successful coordination measurement.
func (m *Metrics) RecordCoordination(effect float64) {
	m.measurementsTotal.WithLabelValues("coordination").Inc()
	m.coordinationEffect.Observe(effect)
}

// RecordMeasurementError records a failed measurement by error class.
func (m *Metrics) RecordMeasurementError(kind, class string) {
	m.measurementErrors.WithLabelValues(kind, class).Inc()
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
