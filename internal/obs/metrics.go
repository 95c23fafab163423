// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package obs provides Prometheus metrics for the Insights server:
// HTTP request counts and latency, metric-engine compute timings, and
// MongoDB source query performance including circuit breaker state.
package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface

	// HTTPRequestsTotal counts API requests by route, method, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method"},
	)

	// Metric engine

	// MetricComputeDuration tracks per-metric compute latency, covering
	// both window queries and aggregation.
	MetricComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_metric_compute_duration_seconds",
			Help:    "Duration of metric computations in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"metric"},
	)

	// MetricComputeErrorsTotal counts failed metric computations.
	MetricComputeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_metric_compute_errors_total",
			Help: "Total number of failed metric computations",
		},
		[]string{"metric"},
	)

	// MongoDB sources

	// SourceQueryDuration tracks source query latency per collection.
	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_source_query_duration_seconds",
			Help:    "Duration of MongoDB source queries in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"collection"},
	)

	// SourceQueryErrorsTotal counts failed source queries.
	SourceQueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_source_query_errors_total",
			Help: "Total number of failed MongoDB source queries",
		},
		[]string{"collection"},
	)

	// BreakerStateChangesTotal counts circuit breaker transitions per
	// collection and resulting state.
	BreakerStateChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_breaker_state_changes_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"collection", "state"},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(route, method, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveMetricCompute records one metric computation.
func ObserveMetricCompute(metric string, duration time.Duration, err error) {
	MetricComputeDuration.WithLabelValues(metric).Observe(duration.Seconds())
	if err != nil {
		MetricComputeErrorsTotal.WithLabelValues(metric).Inc()
	}
}

// ObserveSourceQuery records one MongoDB source query.
func ObserveSourceQuery(collection string, duration time.Duration, err error) {
	SourceQueryDuration.WithLabelValues(collection).Observe(duration.Seconds())
	if err != nil {
		SourceQueryErrorsTotal.WithLabelValues(collection).Inc()
	}
}

// RecordBreakerStateChange records a circuit breaker transition.
func RecordBreakerStateChange(collection, state string) {
	BreakerStateChangesTotal.WithLabelValues(collection, state).Inc()
}
