// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation cache metrics
	RecCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses (absent or stale)",
		},
	)

	RecCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_invalidations_total",
			Help: "Total number of per-user cache invalidations",
		},
	)

	// Similarity index metrics
	IndexLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "similarity_index_loaded",
			Help: "Whether the similarity index is loaded (1) or not (0)",
		},
	)

	IndexMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "similarity_index_movies",
			Help: "Number of movies in the loaded similarity index",
		},
	)

	// Recommendation metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"}, // "personalized", "similar", "fallback"
	)

	FallbacksServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Total number of non-personalized fallback recommendation lists served",
		},
	)

	// Training pipeline metrics
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Training pipeline stage duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"stage"}, // "features", "similarity", "persist"
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of training pipeline runs",
		},
		[]string{"status"}, // "success", "error"
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a recommendation cache lookup outcome.
func RecordCacheLookup(hit bool) {
	if hit {
		RecCacheHits.Inc()
	} else {
		RecCacheMisses.Inc()
	}
}

// SetIndexState updates the similarity index gauges after a load attempt.
func SetIndexState(loaded bool, movies int) {
	if loaded {
		IndexLoaded.Set(1)
	} else {
		IndexLoaded.Set(0)
	}
	IndexMovies.Set(float64(movies))
}

// RecordRecommendation records a recommendation computation.
func RecordRecommendation(kind string, duration time.Duration) {
	RecommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if kind == "fallback" {
		FallbacksServed.Inc()
	}
}

// RecordPipelineStage records a training pipeline stage duration.
func RecordPipelineStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordPipelineRun records a completed training pipeline run.
func RecordPipelineRun(err error) {
	if err != nil {
		PipelineRuns.WithLabelValues("error").Inc()
		return
	}
	PipelineRuns.WithLabelValues("success").Inc()
}
