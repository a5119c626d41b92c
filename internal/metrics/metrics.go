// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prep_analyses_created_total",
			Help: "Total number of JD analyses created",
		},
	)

	AnalysesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_analyses_rejected_total",
			Help: "Total number of analysis requests rejected before a record was created",
		},
		[]string{"reason"},
	)

	ConfidenceUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_confidence_updates_total",
			Help: "Total number of skill confidence changes",
		},
		[]string{"confidence"},
	)

	SlotWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_slot_write_failures_total",
			Help: "Total number of slot writes that failed and were kept in memory only",
		},
		[]string{"slot"},
	)

	CorruptedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prep_history_corrupted_records",
			Help: "Number of history entries skipped on the last load",
		},
	)

	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prep_history_records",
			Help: "Number of usable history entries held by the store",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prep_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
