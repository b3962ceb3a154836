// Package db opens the message archive database and manages its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pkgconfig "channel-report/internal/pkg/config"
)

// PoolConfig holds the connection pool settings for the archive database.
// Loading is fail-open: an unset or invalid environment value falls back
// to the default with a warning.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns pool settings sized for the reporter's access
// pattern: one sequential scan at a time plus the worker's probes.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// PoolConfigFromEnv loads pool settings from DB_MAX_OPEN_CONNS,
// DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME and DB_CONN_MAX_IDLE_TIME,
// falling back to defaults on invalid values.
func PoolConfigFromEnv(logger *slog.Logger) PoolConfig {
	cfg := DefaultPoolConfig()
	positive := func(v int) error {
		if v <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	}

	results := map[string]pkgconfig.ConfigLoadResult{
		"DB_MAX_OPEN_CONNS":     pkgconfig.LoadEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns, positive),
		"DB_MAX_IDLE_CONNS":     pkgconfig.LoadEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns, positive),
		"DB_CONN_MAX_LIFETIME":  pkgconfig.LoadEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime, pkgconfig.ValidatePositiveDuration),
		"DB_CONN_MAX_IDLE_TIME": pkgconfig.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime, pkgconfig.ValidatePositiveDuration),
	}
	for key, res := range results {
		for _, warning := range res.Warnings {
			logger.Warn("invalid pool setting", slog.String("key", key), slog.String("warning", warning))
		}
	}

	cfg.MaxOpenConns = results["DB_MAX_OPEN_CONNS"].Value.(int)
	cfg.MaxIdleConns = results["DB_MAX_IDLE_CONNS"].Value.(int)
	cfg.ConnMaxLifetime = results["DB_CONN_MAX_LIFETIME"].Value.(time.Duration)
	cfg.ConnMaxIdleTime = results["DB_CONN_MAX_IDLE_TIME"].Value.(time.Duration)
	return cfg
}

// Open connects to the archive database named by DATABASE_URL, applies
// the pool settings and verifies the connection with a ping. A missing
// DSN or an unreachable database is fatal: the archive source cannot
// degrade gracefully without storage.
func Open() *sql.DB {
	logger := slog.Default()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	cfg := PoolConfigFromEnv(logger)
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("archive database connected",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))
	return pool
}
