// Command diagnose_feeds checks every feed URL in a report configuration
// and prints a per-feed health summary. Useful when a scheduled report
// starts skipping channels: run it against the same config file to see
// which feeds are unreachable, empty, or stale.
//
// Usage: go run scripts/diagnose_feeds.go [-config report.yaml] [-json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"channel-report/internal/config"
)

// FeedDiagnostic is the diagnostic result for a single feed.
type FeedDiagnostic struct {
	Channel      string `json:"channel"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "FETCH_ERROR", "EMPTY"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	var (
		configPath string
		jsonOutput bool
	)
	flag.StringVar(&configPath, "config", "report.yaml", "Path to the report configuration file")
	flag.BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Source.Type != "feed" || len(cfg.Source.Feeds) == 0 {
		log.Fatalf("Config %s does not define a feed source", configPath)
	}

	channels := make([]string, 0, len(cfg.Source.Feeds))
	for channel := range cfg.Source.Feeds {
		channels = append(channels, channel)
	}
	sort.Strings(channels)

	client := &http.Client{Timeout: 15 * time.Second}
	parser := gofeed.NewParser()
	parser.Client = client

	results := make([]FeedDiagnostic, 0, len(channels))
	for _, channel := range channels {
		results = append(results, diagnoseFeed(parser, channel, cfg.Source.Feeds[channel]))
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("Failed to encode results: %v", err)
		}
		return
	}

	failures := 0
	for _, r := range results {
		switch r.Status {
		case "OK":
			fmt.Printf("OK    %-20s %4d items, latest %s (%dms)\n",
				r.Channel, r.ItemCount, r.LatestDate, r.ResponseTime)
		case "EMPTY":
			fmt.Printf("EMPTY %-20s no items (%dms)\n", r.Channel, r.ResponseTime)
			failures++
		default:
			fmt.Printf("FAIL  %-20s %s\n", r.Channel, r.ErrorMessage)
			failures++
		}
	}
	fmt.Printf("\n%d feeds checked, %d problems\n", len(results), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// diagnoseFeed fetches and parses one feed, recording status, item count
// and the newest publication date.
func diagnoseFeed(parser *gofeed.Parser, channel, url string) FeedDiagnostic {
	diag := FeedDiagnostic{Channel: channel, URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	start := time.Now()
	parsed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		diag.Status = "FETCH_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(parsed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	var latest time.Time
	for _, item := range parsed.Items {
		if item.PublishedParsed != nil && item.PublishedParsed.After(latest) {
			latest = *item.PublishedParsed
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.Format("2006-01-02")
	}
	diag.Status = "OK"
	return diag
}
