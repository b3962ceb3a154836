package notifier

import (
	"context"
	"testing"
)

func TestNoOpNotifier_NotifyReport(t *testing.T) {
	notifier := NewNoOpNotifier()

	if err := notifier.NotifyReport(context.Background(), sampleSummary()); err != nil {
		t.Errorf("NotifyReport() error = %v, want nil", err)
	}
}

func TestNoOpNotifier_NotifyReport_CanceledContext(t *testing.T) {
	notifier := NewNoOpNotifier()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The no-op notifier never touches the context.
	if err := notifier.NotifyReport(ctx, ReportSummary{}); err != nil {
		t.Errorf("NotifyReport() error = %v, want nil", err)
	}
}
