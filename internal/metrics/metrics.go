package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"route", "method"},
	)

	ProviderFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_provider_fetch_total",
			Help: "Provider fetches by source and outcome (ok, failed, disabled)",
		},
		[]string{"source", "outcome"},
	)
	ProviderFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_provider_fetch_duration_seconds",
			Help:    "Provider fetch duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"source"},
	)
	ProviderJobs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jobboard_provider_jobs",
			Help: "Jobs returned by the last fetch of each source",
		},
		[]string{"source"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_search_cache_total",
			Help: "Aggregate cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
	WarmupRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_warmup_runs_total",
			Help: "Scheduled cache warm-up runs by outcome",
		},
		[]string{"outcome"},
	)
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_llm_requests_total",
			Help: "LLM requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

var initOnce sync.Once

// InitMetrics registers every collector with the default registry. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(ProviderFetchTotal)
		prometheus.MustRegister(ProviderFetchDuration)
		prometheus.MustRegister(ProviderJobs)
		prometheus.MustRegister(SearchCacheTotal)
		prometheus.MustRegister(WarmupRunsTotal)
		prometheus.MustRegister(LLMRequestsTotal)
	})
}
