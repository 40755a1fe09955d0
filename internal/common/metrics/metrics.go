// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RecommendationVendorsScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_vendors_scanned",
			Help:    "Eligible vendors scored per recommendation run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RecommendationMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_matches_returned",
			Help:    "Vendors returned per recommendation run",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	RecommendationTopScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_top_score",
			Help:    "Similarity score of the best ranked vendor",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	RecommendationUnresolvedEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_unresolved_events_total",
			Help: "Requested event ids that did not resolve to an event",
		},
	)

	RecommendationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_requests_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_events_published_total",
			Help: "Recommendation events published to SNS by status",
		},
		[]string{"status"},
	)
)
