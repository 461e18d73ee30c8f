package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ssdps/dp_search/search"
)

// serviceMetrics mining counters of the HTTP service, on a registry of their own
type serviceMetrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	patterns  *prometheus.CounterVec
	calls     *prometheus.CounterVec
	exhausted prometheus.Counter
}

func newServiceMetrics() *serviceMetrics {
	m := &serviceMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ssdps_requests_total",
			Help: "Mining requests by method and status",
		}, []string{"method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ssdps_mining_duration_seconds",
			Help:    "Duration of mining runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"method"}),
		patterns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ssdps_patterns_total",
			Help: "Patterns emitted by the search",
		}, []string{"method"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ssdps_case_calls_total",
			Help: "Case-phase calls made by the search",
		}, []string{"method"}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ssdps_budget_exhausted_total",
			Help: "Heuristic runs stopped by the iteration budget",
		}),
	}
	m.registry.MustRegister(m.requests, m.latency, m.patterns, m.calls, m.exhausted)
	m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

func (m *serviceMetrics) observe(method search.Method, res *search.Result, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(string(method), status).Inc()
	if res == nil {
		return
	}
	m.latency.WithLabelValues(string(method)).Observe(res.Elapsed.Seconds())
	m.patterns.WithLabelValues(string(method)).Add(float64(res.Patterns))
	m.calls.WithLabelValues(string(method)).Add(float64(res.Calls))
	if res.BudgetExhausted {
		m.exhausted.Inc()
	}
}

func (m *serviceMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Timeout: 10 * time.Second})
}
