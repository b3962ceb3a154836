package worker

import (
	"channel-report/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the report worker. It
// embeds the standard ConfigMetrics for configuration monitoring and adds
// run-level metrics:
//
//   - worker_report_runs_total: report runs by status (success/failure)
//   - worker_report_run_duration_seconds: run duration histogram
//   - worker_report_channels_processed_total: channels scanned across runs
//   - worker_report_last_success_timestamp: Unix time of the last good run
type WorkerMetrics struct {
	*config.ConfigMetrics

	ReportRunsTotal            *prometheus.CounterVec
	ReportRunDurationSeconds   prometheus.Histogram
	ChannelsProcessedTotal     prometheus.Counter
	ReportLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers worker metrics. Must be called
// once per process; promauto panics on duplicate registration.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		ReportRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_report_runs_total",
			Help: "Total number of report runs by status (success/failure)",
		}, []string{"status"}),

		ReportRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_report_run_duration_seconds",
			Help:    "Duration of report runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		ChannelsProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_report_channels_processed_total",
			Help: "Total number of channels scanned across all report runs",
		}),

		ReportLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_report_last_success_timestamp",
			Help: "Unix timestamp of the last successful report run",
		}),
	}
}

// RecordRun counts one report run with the given status ("success" or
// "failure").
func (m *WorkerMetrics) RecordRun(status string) {
	m.ReportRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the duration of one report run in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.ReportRunDurationSeconds.Observe(seconds)
}

// RecordChannelsProcessed adds the number of channels scanned in one run.
func (m *WorkerMetrics) RecordChannelsProcessed(count int) {
	m.ChannelsProcessedTotal.Add(float64(count))
}

// RecordLastSuccess records now as the last successful run completion.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.ReportLastSuccessTimestamp.SetToCurrentTime()
}
