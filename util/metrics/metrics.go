package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "reportes"

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry       *prometheus.Registry
	ReportsCreated prometheus.Counter
	QueryResults   prometheus.Histogram
	Requests       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ReportsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_created_total",
			Help:      "Number of reports persisted.",
		}),
		QueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reports_query_results",
			Help:      "Number of reports returned per list query.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
	}
	m.Registry.MustRegister(
		m.ReportsCreated,
		m.QueryResults,
		m.Requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
