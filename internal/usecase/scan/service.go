package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"channel-report/internal/config"
	"channel-report/internal/domain/entity"
	"channel-report/internal/observability/logging"
	"channel-report/internal/observability/metrics"
	"channel-report/internal/source"
)

// ScanStats contains statistics about one pipeline run.
type ScanStats struct {
	Groups        int
	Channels      int
	Matched       int
	ChannelErrors int
	Duration      time.Duration
}

// Service drives the scanner over every channel of every configured group
// and accumulates the matches into grouped results.
//
// Scanning is strictly sequential, group by group and channel by channel in
// configured order, which keeps entry ordering deterministic and failure
// isolation simple. The run is cancelable between channels.
type Service struct {
	scanner Scanner
}

// NewService creates a scan Service over the given message source.
func NewService(src source.Source) Service {
	return Service{scanner: NewScanner(src)}
}

// Run scans every channel of every group over the window and returns the
// grouped matches plus run statistics.
//
// Results are initialized with one empty bucket per configured group before
// any scanning starts, so group presence is independent of match count. A
// per-channel fetch failure is logged, counted, and skipped; matches
// already accumulated are never lost. Only context cancellation aborts the
// run early, returning what was accumulated so far alongside the error.
func (s Service) Run(ctx context.Context, groups []config.Group, window entity.Window, patterns []*regexp.Regexp) (*entity.GroupedResults, *ScanStats, error) {
	logger := logging.WithRunID(ctx, logging.FromContext(ctx))
	startAll := time.Now()
	stats := &ScanStats{Groups: len(groups)}

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	results := entity.NewGroupedResults(names)

	for _, group := range groups {
		logger.Info("scanning group",
			slog.String("group", group.Name),
			slog.Int("channels", len(group.Channels)))

		for _, channel := range group.Channels {
			if err := ctx.Err(); err != nil {
				stats.Duration = time.Since(startAll)
				return results, stats, fmt.Errorf("scan canceled: %w", err)
			}

			stats.Channels++
			entries, err := s.scanner.ScanChannel(ctx, channel, window, patterns)

			// Entries selected before a mid-channel failure are kept.
			if len(entries) > 0 {
				if aerr := results.Append(group.Name, entries...); aerr != nil {
					stats.Duration = time.Since(startAll)
					return results, stats, aerr
				}
				stats.Matched += len(entries)
				metrics.RecordEntriesMatched(group.Name, len(entries))
			}

			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					stats.Duration = time.Since(startAll)
					return results, stats, fmt.Errorf("scan canceled: %w", err)
				}

				fetchErr := &ChannelFetchError{Channel: channel, Err: err}
				logger.Warn("failed to scan channel, skipping",
					slog.String("group", group.Name),
					slog.String("channel", channel),
					slog.Any("error", fetchErr))
				metrics.RecordChannelScanned(false)
				metrics.RecordScanError("channel_fetch")
				stats.ChannelErrors++
				continue
			}

			metrics.RecordChannelScanned(true)
			logger.Debug("channel scanned",
				slog.String("group", group.Name),
				slog.String("channel", channel),
				slog.Int("matched", len(entries)))
		}
	}

	stats.Duration = time.Since(startAll)
	logger.Info("scan completed",
		slog.Int("groups", stats.Groups),
		slog.Int("channels", stats.Channels),
		slog.Int("matched", stats.Matched),
		slog.Int("channel_errors", stats.ChannelErrors),
		slog.Duration("duration", stats.Duration),
	)

	return results, stats, nil
}
