// Package metrics exposes the toolkit's Prometheus instrumentation. It is
// opt-in: nothing in this package runs unless a command starts an HTTP
// server around Handler() (the --metrics-addr flag on both `nsq stats` and
// `nsq send`).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PollDuration tracks how long one cluster-wide status-poll tick takes.
	PollDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nsqops_poll_duration_seconds",
			Help:    "Time taken to poll all eligible hosts in one tick",
			Buckets: prometheus.DefBuckets,
		},
	)

	// HostsUnreachableTotal counts per-tick host status-fetch failures.
	HostsUnreachableTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nsqops_hosts_unreachable_total",
			Help: "Total number of host status fetches that failed (transport or HTTP error)",
		},
	)

	// PublishSentTotal counts successfully posted messages.
	PublishSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nsqops_publish_sent_total",
			Help: "Total number of messages successfully published",
		},
	)

	// PublishErrorsTotal counts failed POSTs (dropped, not retried).
	PublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nsqops_publish_errors_total",
			Help: "Total number of publish POSTs that failed and were dropped",
		},
	)

	// PublishObservedDepth is the last depth reading the admission gate saw.
	PublishObservedDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nsqops_publish_observed_depth",
			Help: "Most recently observed producer-aggregate depth for the target topic",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PollDuration,
		HostsUnreachableTotal,
		PublishSentTotal,
		PublishErrorsTotal,
		PublishObservedDepth,
	)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a small helper for timing one operation and recording it to a
// histogram when it completes.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
