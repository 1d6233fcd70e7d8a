// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scrape outcomes recorded on ScrapeRequests.
const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scraper_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scraper_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	PanicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	// Pipeline metrics
	ScrapeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_requests_total",
			Help: "Total number of scrape requests by outcome",
		},
		[]string{"outcome"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_fetch_duration_seconds",
			Help:    "Duration of outbound recipe page fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IngredientParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_ingredient_parse_failures_total",
			Help: "Total number of ingredient lines that fell back to the original text",
		},
	)
)
