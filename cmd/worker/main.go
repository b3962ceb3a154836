package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"channel-report/internal/config"
	"channel-report/internal/domain/entity"
	"channel-report/internal/infra/db"
	"channel-report/internal/infra/notifier"
	"channel-report/internal/infra/render"
	"channel-report/internal/infra/source/archive"
	"channel-report/internal/infra/source/feed"
	workerPkg "channel-report/internal/infra/worker"
	"channel-report/internal/resilience/retry"
	"channel-report/internal/source"
	reportUC "channel-report/internal/usecase/report"
	scanUC "channel-report/internal/usecase/scan"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM messages LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.String("window_mode", workerConfig.WindowMode),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// The report configuration is fatal when broken: without a valid
	// window and compilable keyword patterns there is nothing to schedule.
	reportConfig := loadReportConfig(logger)

	src, cleanup := setupSource(logger, reportConfig)
	defer cleanup()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start metrics HTTP server
	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	pipeline := &reportPipeline{
		reportConfig: reportConfig,
		scanService:  scanUC.NewService(src),
		builder:      reportUC.NewBuilder(os.Getenv("REPORT_LINK_BASE")),
		notifier:     setupNotifier(logger),
		format:       reportFormat(),
		outputDir:    os.Getenv("REPORT_OUTPUT_DIR"),
	}

	startCronWorker(logger, pipeline, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadReportConfig loads the report configuration file named by
// REPORT_CONFIG (default "report.yaml"). Any parse or validation error is
// fatal for the worker.
func loadReportConfig(logger *slog.Logger) *config.ReportConfig {
	path := os.Getenv("REPORT_CONFIG")
	if path == "" {
		path = "report.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("failed to load report configuration",
			slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("report configuration loaded",
		slog.String("path", path),
		slog.Int("groups", len(cfg.Groups)),
		slog.Int("keywords", len(cfg.Keywords)),
		slog.String("source_type", cfg.Source.Type))
	return cfg
}

// setupSource builds the message source selected by the report
// configuration. Returns the source and a cleanup function for graceful
// shutdown.
func setupSource(logger *slog.Logger, cfg *config.ReportConfig) (source.Source, func()) {
	if cfg.Source.Type == "feed" {
		logger.Info("using feed message source", slog.Int("feeds", len(cfg.Source.Feeds)))
		return feed.New(createHTTPClient(), cfg.Source.Feeds), func() {}
	}

	database := db.Open()
	waitForMigrations(logger, database)
	logger.Info("using archive message source")
	return archive.New(database), func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}

// createHTTPClient creates an HTTP client for feed fetching with sane
// timeouts and connection pooling.
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

// setupNotifier builds the report notifier from the environment. When
// Slack is disabled or misconfigured the worker still runs, it just
// announces nothing.
func setupNotifier(logger *slog.Logger) notifier.Notifier {
	slackConfig := loadSlackConfig(logger)
	if !slackConfig.Enabled {
		logger.Info("Slack notifications disabled")
		return notifier.NewNoOpNotifier()
	}
	logger.Info("Slack notifications enabled")
	return notifier.NewSlackNotifier(slackConfig)
}

// loadSlackConfig loads Slack configuration from environment variables.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack notifications (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// reportFormat returns the output format from REPORT_FORMAT, defaulting to
// docx. An unknown value is rejected at startup rather than on the first
// scheduled run.
func reportFormat() string {
	format := os.Getenv("REPORT_FORMAT")
	if format == "" {
		return "docx"
	}
	if _, err := render.ForFormat(format); err != nil {
		slog.Error("invalid REPORT_FORMAT", slog.String("format", format), slog.Any("error", err))
		os.Exit(1)
	}
	return format
}

// reportPipeline bundles the dependencies of one scheduled report run.
type reportPipeline struct {
	reportConfig *config.ReportConfig
	scanService  scanUC.Service
	builder      reportUC.Builder
	notifier     notifier.Notifier
	format       string
	outputDir    string
	location     *time.Location
}

// startCronWorker starts the cron scheduler and runs the report job periodically.
func startCronWorker(logger *slog.Logger, pipeline *reportPipeline, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	pipeline.location = loc
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runReportJob(logger, pipeline, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runReportJob executes a single report run with timeout and error handling.
func runReportJob(logger *slog.Logger, pipeline *reportPipeline, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordRun("started")

	window := pipeline.window(cfg.WindowMode)
	logger.Info("report run started", slog.String("window", window.Label()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	results, stats, err := pipeline.scanService.Run(ctx, pipeline.reportConfig.Groups, window, pipeline.reportConfig.Patterns())
	if err != nil {
		logger.Error("report run failed", slog.Any("error", err))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return
	}

	model := pipeline.builder.Build(results, window)
	path, err := pipeline.render(ctx, model)
	if err != nil {
		logger.Error("report rendering failed", slog.Any("error", err))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return
	}

	// Record metrics
	metrics.RecordRun("success")
	metrics.RecordRunDuration(time.Since(startTime).Seconds())
	metrics.RecordChannelsProcessed(stats.Channels)
	metrics.RecordLastSuccess()

	logger.Info("report run completed",
		slog.String("path", path),
		slog.Int("groups", stats.Groups),
		slog.Int("channels", stats.Channels),
		slog.Int("matched", stats.Matched),
		slog.Int("channel_errors", stats.ChannelErrors),
		slog.Duration("duration", stats.Duration),
	)

	summary := notifier.ReportSummary{
		WindowLabel:   window.Label(),
		Path:          path,
		Format:        pipeline.format,
		Matched:       stats.Matched,
		Channels:      stats.Channels,
		ChannelErrors: stats.ChannelErrors,
		Duration:      stats.Duration,
	}
	if err := pipeline.notifier.NotifyReport(ctx, summary); err != nil {
		logger.Error("report notification failed", slog.Any("error", err))
	}
}

// window resolves the date window for one run. In previous-day mode it is
// yesterday in the worker timezone; otherwise it is the range fixed in the
// report configuration.
func (p *reportPipeline) window(mode string) entity.Window {
	if mode == workerPkg.WindowModePreviousDay {
		y := time.Now().In(p.location).AddDate(0, 0, -1)
		day := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
		return entity.NewWindow(day, day)
	}
	return p.reportConfig.Window()
}

// render writes the report document, retrying transient write failures.
func (p *reportPipeline) render(ctx context.Context, model entity.ReportModel) (string, error) {
	renderer, err := render.ForFormat(p.format)
	if err != nil {
		return "", err
	}

	target := ""
	if p.outputDir != "" {
		target = filepath.Join(p.outputDir, model.DefaultFileName(renderer.Extension()))
	}

	var path string
	err = retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
		var writeErr error
		path, writeErr = render.WriteFile(renderer, model, target)
		return writeErr
	})
	return path, err
}
