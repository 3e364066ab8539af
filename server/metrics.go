package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "littletsp"

// Solve outcomes used as the "outcome" label.
const (
	outcomeOK         = "ok"
	outcomeInvalid    = "invalid"
	outcomeInfeasible = "infeasible"
	outcomeTimeout    = "timeout"
	outcomeError      = "error"
)

// metrics owns a private registry so several servers (tests) can coexist.
type metrics struct {
	registry *prometheus.Registry

	solves       *prometheus.CounterVec
	duration     prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	nodes        prometheus.Histogram
	cities       prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solve requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time spent in the branch-and-bound search.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_nodes",
			Help:      "Branching nodes popped per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		cities: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "instance_cities",
			Help:      "Number of cities per solve request.",
			Buckets:   prometheus.LinearBuckets(2, 4, 12),
		}),
	}

	m.registry.MustRegister(
		m.solves, m.duration, m.cacheLookups, m.nodes, m.cities,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
