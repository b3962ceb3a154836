package metrics

import "time"

// RecordChannelScanned records the outcome of a single channel scan.
// Status should be either "success" or "failure".
func RecordChannelScanned(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ChannelsScannedTotal.WithLabelValues(status).Inc()
}

// RecordMessagesExamined records the number of messages consumed from a
// channel's history during one scan.
func RecordMessagesExamined(count int) {
	if count <= 0 {
		return
	}
	MessagesExaminedTotal.Add(float64(count))
}

// RecordEntriesMatched records matched entries accumulated for a group.
func RecordEntriesMatched(group string, count int) {
	if count <= 0 {
		return
	}
	EntriesMatchedTotal.WithLabelValues(group).Add(float64(count))
}

// RecordChannelScanDuration records the time taken to scan one channel.
func RecordChannelScanDuration(duration time.Duration) {
	ChannelScanDuration.Observe(duration.Seconds())
}

// RecordScanError records a recoverable error during scanning.
func RecordScanError(errorType string) {
	ScanErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordReportRendered records the result of a report render operation.
func RecordReportRendered(format string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	ReportsRenderedTotal.WithLabelValues(format, status).Inc()
	ReportRenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}
