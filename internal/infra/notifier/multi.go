package notifier

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MultiNotifier fans one notification out to several targets concurrently.
// Every target is attempted even if another one fails; the first error is
// returned after all sends finish.
type MultiNotifier struct {
	targets []Notifier
}

// NewMultiNotifier creates a MultiNotifier over the given targets.
func NewMultiNotifier(targets ...Notifier) *MultiNotifier {
	return &MultiNotifier{targets: targets}
}

// NotifyReport sends the summary to every target.
func (m *MultiNotifier) NotifyReport(ctx context.Context, summary ReportSummary) error {
	var g errgroup.Group

	for _, target := range m.targets {
		g.Go(func() error {
			return target.NotifyReport(ctx, summary)
		})
	}

	return g.Wait()
}
