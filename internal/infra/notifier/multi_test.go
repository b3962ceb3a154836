package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type recordingNotifier struct {
	calls atomic.Int32
	err   error
}

func (r *recordingNotifier) NotifyReport(ctx context.Context, summary ReportSummary) error {
	r.calls.Add(1)
	return r.err
}

func TestMultiNotifier_AllTargetsCalled(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}

	multi := NewMultiNotifier(first, second)
	if err := multi.NotifyReport(context.Background(), sampleSummary()); err != nil {
		t.Fatalf("NotifyReport() error = %v", err)
	}

	if first.calls.Load() != 1 || second.calls.Load() != 1 {
		t.Errorf("calls = %d, %d, want 1, 1", first.calls.Load(), second.calls.Load())
	}
}

func TestMultiNotifier_FailureDoesNotStopOthers(t *testing.T) {
	boom := errors.New("webhook down")
	failing := &recordingNotifier{err: boom}
	healthy := &recordingNotifier{}

	multi := NewMultiNotifier(failing, healthy)
	err := multi.NotifyReport(context.Background(), sampleSummary())
	if !errors.Is(err, boom) {
		t.Fatalf("NotifyReport() error = %v, want %v", err, boom)
	}

	if healthy.calls.Load() != 1 {
		t.Errorf("healthy target calls = %d, want 1", healthy.calls.Load())
	}
}

func TestMultiNotifier_NoTargets(t *testing.T) {
	multi := NewMultiNotifier()

	if err := multi.NotifyReport(context.Background(), sampleSummary()); err != nil {
		t.Errorf("NotifyReport() error = %v, want nil", err)
	}
}
