// Package notifier provides abstraction for announcing finished reports.
// It defines the Notifier interface which allows different notification
// mechanisms (Slack, email, etc.) to be used interchangeably through
// dependency injection.
//
// The package includes a Slack webhook implementation, a fan-out notifier
// for multiple targets, and a no-op notifier for when notifications are
// disabled.
package notifier

import (
	"context"
	"time"
)

// ReportSummary describes one finished report run for notification purposes.
type ReportSummary struct {
	// WindowLabel is the human-readable date range of the report.
	WindowLabel string

	// Path is where the rendered document was written.
	Path string

	// Format is the output format, e.g. "docx".
	Format string

	// Matched is the number of entries selected across all groups.
	Matched int

	// Channels is the number of channels scanned.
	Channels int

	// ChannelErrors is the number of channels skipped due to fetch failures.
	ChannelErrors int

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// Notifier is an interface for sending report completion notifications.
// Implementations should handle rate limiting, retries, and error logging
// internally and respect context cancellation.
type Notifier interface {
	// NotifyReport announces a finished report run.
	// Returns a non-nil error if the notification failed after all retry
	// attempts.
	NotifyReport(ctx context.Context, summary ReportSummary) error
}
