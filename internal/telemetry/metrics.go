// Package telemetry exposes the service's own operational metrics —
// distinct from the customer telemetry (spans) the service ingests and
// analyzes. It follows the platform's Prometheus registry-and-handler
// pattern.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds Nexarch's own collectors, separate from any
	// default global registry.
	Registry = prometheus.NewRegistry()

	ingestAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexarch",
			Subsystem: "ingest",
			Name:      "spans_accepted_total",
			Help:      "Total number of spans accepted by the ingestion front.",
		},
		[]string{"tenant"},
	)

	ingestRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexarch",
			Subsystem: "ingest",
			Name:      "spans_rejected_total",
			Help:      "Total number of spans rejected by the ingestion front.",
		},
		[]string{"tenant", "reason"},
	)

	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "nexarch",
			Subsystem: "ingest",
			Name:      "queue_depth",
			Help:      "Current per-tenant ingest queue backlog.",
		},
		[]string{"tenant"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexarch",
			Subsystem: "cache",
			Name:      "results_total",
			Help:      "Read-surface cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	readDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nexarch",
			Subsystem: "read",
			Name:      "operation_duration_seconds",
			Help:      "Duration of read-surface operations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		ingestAccepted,
		ingestRejected,
		queueDepth,
		cacheHits,
		readDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordIngestAccepted increments the accepted-span counter for tenant.
func RecordIngestAccepted(tenant string, n int) {
	if n <= 0 {
		return
	}
	ingestAccepted.WithLabelValues(tenant).Add(float64(n))
}

// RecordIngestRejected increments the rejected-span counter for tenant
// with the given rejection reason.
func RecordIngestRejected(tenant, reason string) {
	ingestRejected.WithLabelValues(tenant, reason).Inc()
}

// SetQueueDepth reports a tenant's current ingest backlog.
func SetQueueDepth(tenant string, depth int) {
	queueDepth.WithLabelValues(tenant).Set(float64(depth))
}

// RecordCacheOutcome records a read-surface cache hit or miss.
func RecordCacheOutcome(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheHits.WithLabelValues(outcome).Inc()
}

// ObserveReadDuration records how long a named read operation took.
func ObserveReadDuration(operation string, d time.Duration) {
	readDuration.WithLabelValues(operation).Observe(d.Seconds())
}
