// Package metrics provides centralized Prometheus metrics for the reporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan metrics track the retrieval-filter-aggregate pipeline.
var (
	// ChannelsScannedTotal counts channel scans by outcome
	ChannelsScannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_channels_scanned_total",
			Help: "Total number of channel scans by status",
		},
		[]string{"status"},
	)

	// MessagesExaminedTotal counts messages consumed from channel histories
	MessagesExaminedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "report_messages_examined_total",
			Help: "Total number of messages examined during scanning",
		},
	)

	// EntriesMatchedTotal counts matched entries per group
	EntriesMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_entries_matched_total",
			Help: "Total number of matched entries by group",
		},
		[]string{"group"},
	)

	// ChannelScanDuration measures per-channel scan duration in seconds
	ChannelScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_channel_scan_duration_seconds",
			Help:    "Duration of a single channel scan in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ScanErrorsTotal counts recoverable scan failures by error type
	ScanErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_scan_errors_total",
			Help: "Total number of recoverable scan errors by type",
		},
		[]string{"error_type"},
	)
)

// Render metrics track report building and serialization.
var (
	// ReportsRenderedTotal counts rendered reports by format and outcome
	ReportsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_renders_total",
			Help: "Total number of rendered reports by format and status",
		},
		[]string{"format", "status"},
	)

	// ReportRenderDuration measures render duration in seconds
	ReportRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_render_duration_seconds",
			Help:    "Duration of report rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)
)
