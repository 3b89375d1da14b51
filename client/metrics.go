package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the request collectors shared by every Client built with
// WithMetrics. Create one per registry.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arrcore",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests sent to upstream services, by outcome",
		}, []string{"service", "method", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arrcore",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests to upstream services",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method"}),
	}
}

// observe records one request. code 0 means no response was received.
func (m *Metrics) observe(service, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(service, method, label).Inc()
	m.duration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}
