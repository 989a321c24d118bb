package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hospital_directory"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	datasetLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_load_failures_total",
			Help:      "Dataset loads that degraded to an empty result",
		},
		[]string{"dataset"},
	)

	datasetRecordsLoaded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_records_loaded",
			Help:      "Records returned per dataset load",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"dataset"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(datasetLoadFailures)
	prometheus.MustRegister(datasetRecordsLoaded)
}

// DatasetLoadFailed counts a load that fell back to an empty result.
func DatasetLoadFailed(dataset string) {
	datasetLoadFailures.WithLabelValues(dataset).Inc()
}

// DatasetLoaded records how many records a successful load produced.
func DatasetLoaded(dataset string, n int) {
	datasetRecordsLoaded.WithLabelValues(dataset).Observe(float64(n))
}
