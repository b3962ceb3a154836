package worker

import (
	"fmt"
	"log/slog"
	"time"

	"channel-report/internal/pkg/config"
)

// Window mode values for WorkerConfig.WindowMode.
const (
	// WindowModeConfig scans the date range fixed in the report config file.
	WindowModeConfig = "config"

	// WindowModePreviousDay scans yesterday in the worker timezone,
	// ignoring the dates in the report config file. This is the mode for
	// a daily scheduled report.
	WindowModePreviousDay = "previous-day"
)

// WorkerConfig holds the configuration for the scheduled report worker:
// when to run, which date window to scan, and operational limits.
//
// All fields have defaults and validation rules, and loading is fail-open:
// an invalid environment value falls back to the default with a warning
// instead of preventing the worker from starting.
type WorkerConfig struct {
	// CronSchedule is the cron expression for report generation.
	// Format: "minute hour day month weekday". Default: "30 5 * * *".
	CronSchedule string

	// Timezone is the IANA timezone the schedule and the previous-day
	// window are evaluated in. Default: "Europe/Kyiv".
	Timezone string

	// WindowMode selects the scanned date range per run:
	// WindowModeConfig or WindowModePreviousDay. Default: previous-day.
	WindowMode string

	// RunTimeout is the maximum duration of a single report run.
	// The run's context is canceled after this timeout. Default: 15 minutes.
	RunTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	// Range: 1024-65535. Default: 9092.
	MetricsPort int
}

// DefaultConfig returns a WorkerConfig with production defaults: a daily
// report of the previous day at 5:30 Kyiv time, a 15-minute run budget,
// and the conventional exporter ports.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "30 5 * * *",
		Timezone:     "Europe/Kyiv",
		WindowMode:   WindowModePreviousDay,
		RunTimeout:   15 * time.Minute,
		HealthPort:   9091,
		MetricsPort:  9092,
	}
}

// ValidateWindowMode checks a window mode string.
func ValidateWindowMode(mode string) error {
	switch mode {
	case WindowModeConfig, WindowModePreviousDay:
		return nil
	default:
		return fmt.Errorf("invalid window mode '%s': must be %q or %q",
			mode, WindowModeConfig, WindowModePreviousDay)
	}
}

// Validate checks all configuration values and returns the collected
// errors, if any.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}

	if err := ValidateWindowMode(c.WindowMode); err != nil {
		errs = append(errs, fmt.Errorf("window mode: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to defaults on failure.
//
// Environment variables:
//   - REPORT_SCHEDULE: cron expression (default "30 5 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "Europe/Kyiv")
//   - REPORT_WINDOW_MODE: "config" or "previous-day" (default "previous-day")
//   - RUN_TIMEOUT: duration string 1m-4h (default "15m")
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
//   - WORKER_METRICS_PORT: integer 1024-65535 (default 9092)
//
// Loading is fail-open: the returned config is always valid, and the
// error result exists only for call-site symmetry.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	applyFallback := func(field string, warnings []string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("REPORT_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		applyFallback("cron_schedule", result.Warnings)
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		applyFallback("timezone", result.Warnings)
	}

	result = config.LoadEnvWithFallback("REPORT_WINDOW_MODE", cfg.WindowMode, ValidateWindowMode)
	cfg.WindowMode = result.Value.(string)
	if result.FallbackApplied {
		applyFallback("window_mode", result.Warnings)
	}

	result = config.LoadEnvDuration("RUN_TIMEOUT", cfg.RunTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.RunTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		applyFallback("run_timeout", result.Warnings)
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		applyFallback("health_port", result.Warnings)
	}

	result = config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	if result.FallbackApplied {
		applyFallback("metrics_port", result.Warnings)
	}

	metrics.SetFallbackActive("any", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
