// Package feed exposes RSS/Atom feeds as scannable message channels. It
// uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"channel-report/internal/domain/entity"
	"channel-report/internal/resilience/circuitbreaker"
	"channel-report/internal/resilience/retry"
	"channel-report/internal/source"
	"channel-report/internal/utils/text"
)

const userAgent = "ChannelReportBot"

// Source adapts RSS/Atom feeds to the message source interface. Each
// configured channel name maps to one feed URL. Fetches go through a
// circuit breaker and retry with backoff.
type Source struct {
	client         *http.Client
	feeds          map[string]string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// New creates a feed Source over the channel-to-URL mapping.
func New(client *http.Client, feeds map[string]string) *Source {
	return &Source{
		client:         client,
		feeds:          feeds,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ChannelFetchConfig()),
		retryConfig:    retry.ChannelFetchConfig(),
	}
}

// History fetches the feed for the channel and returns its items as an
// ascending message sequence. Items published before the anchor day are
// dropped up front; feeds carry no deeper history anyway.
func (s *Source) History(ctx context.Context, channel string, anchor time.Time) (source.Iterator, error) {
	feedURL, ok := s.feeds[channel]
	if !ok {
		return nil, fmt.Errorf("no feed configured for channel %q", channel)
	}

	var messages []entity.Message

	retryErr := retry.WithBackoff(ctx, s.retryConfig, func() error {
		cbResult, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.doFetch(ctx, channel, feedURL, anchor)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("channel", channel),
					slog.String("url", feedURL),
					slog.String("state", s.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		messages = cbResult.([]entity.Message)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return source.NewSliceIterator(messages), nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (s *Source) doFetch(ctx context.Context, channel, feedURL string, anchor time.Time) ([]entity.Message, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = s.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	anchorDay := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	items := make([]*gofeed.Item, len(feed.Items))
	copy(items, feed.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return publishedAt(items[i]).Before(publishedAt(items[j]))
	})

	messages := make([]entity.Message, 0, len(items))
	for _, it := range items {
		pubAt := publishedAt(it)
		if pubAt.UTC().Truncate(24 * time.Hour).Before(anchorDay) {
			continue
		}

		// Prefer full content, fall back to the summary.
		body := it.Content
		if body == "" {
			body = it.Description
		}

		text := it.Title
		if flat := flattenHTML(body); flat != "" {
			text = text + "\n" + flat
		}

		messages = append(messages, entity.Message{
			Channel:  channel,
			ID:       int64(len(messages) + 1),
			PostedAt: pubAt,
			Text:     text,
		})
	}

	return messages, nil
}

func publishedAt(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Now()
}

// flattenHTML strips markup from feed item bodies, collapsing whitespace.
func flattenHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return text.Flatten(doc.Text())
}
