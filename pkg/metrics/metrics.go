package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	ReportBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_build_duration_seconds",
			Help:    "Financial report assembly duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"report"},
	)

	LedgerWriteCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_write_count",
			Help: "Ledger write attempts on milestone release",
		},
		[]string{"status"}, // status: success, failed, rejected
	)

	ReportCacheCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_count",
			Help: "Report cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)
)

// RecordHTTPRequestDuration records one HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordReportBuild records one report assembly.
func RecordReportBuild(report string, duration time.Duration) {
	ReportBuildDuration.WithLabelValues(report).Observe(duration.Seconds())
}

// IncrementLedgerWrite counts a ledger write attempt by outcome.
func IncrementLedgerWrite(status string) {
	LedgerWriteCount.WithLabelValues(status).Inc()
}

// IncrementReportCache counts a cache hit or miss.
func IncrementReportCache(result string) {
	ReportCacheCount.WithLabelValues(result).Inc()
}
