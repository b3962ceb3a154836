// Package config provides environment-variable loading with validation
// and fallback behavior shared by the worker and CLI entry points.
//
// Loaders never fail: an unset variable silently uses the default, and an
// invalid value falls back to the default with a warning attached to the
// result. Configuration problems surface in logs and metrics instead of
// crashing a scheduled run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult represents the result of loading one configuration
// value. Value holds the loaded value (the default if a fallback was
// applied), Warnings carries one message per fallback, and
// FallbackApplied reports whether the environment value was rejected.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a string from an environment variable, returning
// the default when the variable is unset or empty. No validation is
// performed.
//
//	format := LoadEnvString("REPORT_FORMAT", "docx")
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string from an environment variable and
// validates it. A value that fails validation is replaced by the default
// and recorded as a warning.
//
//	result := LoadEnvWithFallback("REPORT_SCHEDULE", "30 5 * * *", ValidateCronSchedule)
//	schedule := result.Value.(string)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a Go duration string ("30s", "5m", "1h30m") from
// an environment variable. Parse and validation failures both fall back
// to the default with a warning.
//
//	result := LoadEnvDuration("RUN_TIMEOUT", 15*time.Minute, ValidatePositiveDuration)
//	timeout := result.Value.(time.Duration)
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, err, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt loads an integer from an environment variable. Parse and
// validation failures both fall back to the default with a warning.
//
//	result := LoadEnvInt("HEALTH_PORT", 8081, func(v int) error {
//	    return ValidateIntRange(v, 1024, 65535)
//	})
//	port := result.Value.(int)
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, err, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool loads a boolean from an environment variable, accepting the
// forms strconv.ParseBool accepts ("true", "1", "f", ...). Unparseable
// values fall back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, err, defaultValue)
	}

	return ConfigLoadResult{Value: parsed}
}

func fallbackResult(envKey, value string, err error, defaultValue interface{}) ConfigLoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, value, err, defaultValue)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
