package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Business metrics for the comments service
	ScrapeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_runs_total",
			Help: "Total number of scrape runs",
		},
		[]string{"status"},
	)

	VideosScrapedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videos_scraped_total",
			Help: "Total number of videos processed by scrape runs",
		},
		[]string{"status"},
	)

	CommentsScrapedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_scraped_total",
			Help: "Total number of comments extracted",
		},
	)

	SnapshotWritesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_writes_total",
			Help: "Total number of progressive snapshot writes",
		},
	)

	ScrapesInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scrapes_in_progress",
			Help: "Number of scrape runs currently executing",
		},
	)
)
