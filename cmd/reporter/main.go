// Package main provides a one-shot CLI that scans the configured channels
// and writes a keyword report document.
// Usage: channel-reporter [--config report.yaml] [--format docx] [--output path]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"channel-report/internal/config"
	"channel-report/internal/infra/db"
	"channel-report/internal/infra/render"
	"channel-report/internal/infra/source/archive"
	"channel-report/internal/infra/source/feed"
	"channel-report/internal/observability/logging"
	"channel-report/internal/resilience/retry"
	"channel-report/internal/source"
	reportUC "channel-report/internal/usecase/report"
	scanUC "channel-report/internal/usecase/scan"
)

func main() {
	var (
		configPath string
		format     string
		outputPath string
		linkBase   string
	)

	flag.StringVar(&configPath, "config", "report.yaml", "Path to the report configuration file")
	flag.StringVar(&format, "format", "docx", "Output format: docx, html or md")
	flag.StringVar(&outputPath, "output", "", "Output file path (default: report_<window>.<ext> in the current directory)")
	flag.StringVar(&linkBase, "link-base", "", "Base URL for entry source links (default: https://t.me)")
	flag.Parse()

	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	// Reject an unknown format before any scanning starts.
	renderer, err := render.ForFormat(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load report configuration",
			slog.String("path", configPath), slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src, cleanup := setupSource(logger, cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunIDContext(ctx, uuid.NewString())
	ctx = logging.WithLogger(ctx, logger)

	window := cfg.Window()
	logger.Info("scan started",
		slog.String("window", window.Label()),
		slog.Int("groups", len(cfg.Groups)),
		slog.Int("keywords", len(cfg.Keywords)))

	results, stats, err := scanUC.NewService(src).Run(ctx, cfg.Groups, window, cfg.Patterns())
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if stats.ChannelErrors > 0 {
		logger.Warn("some channels were skipped",
			slog.Int("channel_errors", stats.ChannelErrors))
	}

	model := reportUC.NewBuilder(linkBase).Build(results, window)

	var path string
	err = retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
		var writeErr error
		path, writeErr = render.WriteFile(renderer, model, outputPath)
		return writeErr
	})
	if err != nil {
		logger.Error("report rendering failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("report written",
		slog.String("path", path),
		slog.Int("matched", stats.Matched),
		slog.Int("channels", stats.Channels),
		slog.Duration("duration", stats.Duration))
	fmt.Printf("Report written to %s (%d entries from %d channels)\n",
		path, stats.Matched, stats.Channels)
}

// setupSource builds the message source selected by the report
// configuration. Returns the source and a cleanup function.
func setupSource(logger *slog.Logger, cfg *config.ReportConfig) (source.Source, func()) {
	if cfg.Source.Type == "feed" {
		logger.Info("using feed message source", slog.Int("feeds", len(cfg.Source.Feeds)))
		return feed.New(createHTTPClient(), cfg.Source.Feeds), func() {}
	}

	database := db.Open()
	logger.Info("using archive message source")
	return archive.New(database), func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}

// createHTTPClient creates an HTTP client for feed fetching.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
