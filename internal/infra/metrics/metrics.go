package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var snapshotsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubemetrics_snapshots_total",
		Help: "Total number of snapshots built, by the usage source that served them.",
	},
	[]string{"namespace", "provenance"},
)

var snapshotBuildDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kubemetrics_snapshot_build_duration_seconds",
		Help:    "Time spent acquiring and correlating one snapshot.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"namespace"},
)

var snapshotPods = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "kubemetrics_snapshot_pods",
		Help: "Number of pods in the most recent snapshot.",
	},
	[]string{"namespace"},
)

var inventoryFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubemetrics_inventory_failures_total",
		Help: "Total number of scrapes served with an empty snapshot because pod listing failed.",
	},
	[]string{"namespace"},
)

var usageTierFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubemetrics_usage_tier_failures_total",
		Help: "Total number of failed attempts per usage source tier.",
	},
	[]string{"tier"},
)

var quantityParseErrorsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubemetrics_quantity_parse_errors_total",
		Help: "Total number of resource quantities that could not be parsed and were reported as zero.",
	},
	[]string{"field"},
)

// RecordSnapshot records the outcome of one snapshot build.
func RecordSnapshot(namespace, provenance string, pods int, duration time.Duration) {
	snapshotsTotal.WithLabelValues(namespace, provenance).Inc()
	snapshotBuildDuration.WithLabelValues(namespace).Observe(duration.Seconds())
	snapshotPods.WithLabelValues(namespace).Set(float64(pods))
}

// RecordInventoryFailure increments the counter when pod listing fails for a scrape.
func RecordInventoryFailure(namespace string) {
	inventoryFailuresTotal.WithLabelValues(namespace).Inc()
}

// RecordUsageTierFailure increments the counter when a usage tier fails.
func RecordUsageTierFailure(tier string) {
	usageTierFailuresTotal.WithLabelValues(tier).Inc()
}

// RecordQuantityParseError increments the counter when a quantity is degraded to zero.
func RecordQuantityParseError(field string) {
	quantityParseErrorsTotal.WithLabelValues(field).Inc()
}
