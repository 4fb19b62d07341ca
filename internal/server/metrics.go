package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. Each Metrics owns its
// registry so that several servers (or tests) can coexist in one process.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	evalDuration   prometheus.Histogram
	evalErrors     *prometheus.CounterVec
	wsSessions     prometheus.Gauge
	handler        http.Handler
}

// NewMetrics creates and registers the server metrics along with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_requests_total",
			Help: "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_requests",
			Help: "HTTP requests currently being served.",
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_eval_duration_seconds",
			Help:    "Time spent evaluating expressions.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 9),
		}),
		evalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_eval_errors_total",
			Help: "Failed evaluations by error kind.",
		}, []string{"kind"}),
		wsSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_ws_sessions",
			Help: "Open websocket sessions.",
		}),
	}
	reg.MustRegister(
		m.requestsTotal, m.activeRequests, m.evalDuration, m.evalErrors, m.wsSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// Touch the unlabeled series so they appear before the first request.
	m.requestsTotal.WithLabelValues("/eval", "200").Add(0)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the in-flight gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ObserveEval records the duration of one evaluation.
func (m *Metrics) ObserveEval(d time.Duration) { m.evalDuration.Observe(d.Seconds()) }

// RecordEvalError counts a failed evaluation.
func (m *Metrics) RecordEvalError(kind string) { m.evalErrors.WithLabelValues(kind).Inc() }

// SessionOpened and SessionClosed track websocket sessions.
func (m *Metrics) SessionOpened() { m.wsSessions.Inc() }

// SessionClosed decrements the websocket session gauge.
func (m *Metrics) SessionClosed() { m.wsSessions.Dec() }

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
