// Package scan implements the retrieval-filter-aggregate pipeline: per
// channel, date-bounded history traversal with early termination, keyword
// selection, and grouped accumulation of the matches.
package scan

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"channel-report/internal/domain/entity"
	"channel-report/internal/observability/metrics"
	"channel-report/internal/observability/tracing"
	"channel-report/internal/source"
)

// Scanner walks one channel's message history over a date window and
// selects messages matching any keyword pattern.
type Scanner struct {
	src source.Source
}

// NewScanner creates a Scanner over the given message source.
func NewScanner(src source.Source) Scanner {
	return Scanner{src: src}
}

// ScanChannel traverses the channel's history anchored at the window's
// start day and walking forward in ascending timestamp order. Traversal
// stops as soon as a message's calendar day is past the window's end date,
// which bounds an otherwise unbounded history walk. Messages delivered
// before the window (a source may yield a few around the anchor) are
// skipped, not terminal.
//
// A message with a non-empty text body is selected when any pattern
// matches anywhere within the body; the first matching pattern wins and
// the remaining patterns are not evaluated, so a message produces at most
// one entry. Entries are returned in scan order.
//
// On a mid-iteration failure the entries selected so far are returned
// together with the error, so the caller does not lose matches already
// made in this channel.
func (s Scanner) ScanChannel(ctx context.Context, channel string, window entity.Window, patterns []*regexp.Regexp) ([]entity.MatchedEntry, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "scan.channel")
	span.SetAttributes(attribute.String("channel", channel))
	defer span.End()

	start := time.Now()
	examined := 0
	defer func() {
		metrics.RecordMessagesExamined(examined)
		metrics.RecordChannelScanDuration(time.Since(start))
	}()

	it, err := s.src.History(ctx, channel, window.Start)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := it.Close(); cerr != nil {
			slog.Warn("failed to close channel history",
				slog.String("channel", channel),
				slog.Any("error", cerr))
		}
	}()

	var entries []entity.MatchedEntry
	for {
		msg, ok, err := it.Next(ctx)
		if err != nil {
			return entries, err
		}
		if !ok {
			break
		}
		examined++

		day := msg.Day()
		if day.After(window.End) {
			// Past the window: the history is ascending, nothing further
			// can be inside it.
			break
		}
		if day.Before(window.Start) {
			continue
		}
		if !msg.HasText() {
			continue
		}

		for _, pattern := range patterns {
			if pattern.MatchString(msg.Text) {
				entries = append(entries, entity.NewMatchedEntry(msg))
				break
			}
		}
	}

	return entries, nil
}
