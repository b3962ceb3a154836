package config

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics provides parameterized Prometheus metrics for
// configuration state. Each component (worker, reporter) creates its own
// set so validation errors and fallbacks show up per component:
//
//   - {component}_config_load_timestamp: Unix timestamp of last load
//   - {component}_config_validation_errors_total: validation errors by field
//   - {component}_config_fallbacks_total: fallback operations by field
//   - {component}_config_fallback_active: 1 while a fallback is in effect
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        *prometheus.GaugeVec
}

// NewConfigMetrics creates and registers configuration metrics for the
// named component. Must be called at most once per component name per
// process, or promauto will panic on duplicate registration.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of the last %s configuration load", componentName),
		}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", componentName),
			Help: fmt.Sprintf("Total %s configuration validation errors", componentName),
		}, []string{"field"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total %s configuration fallback operations", componentName),
		}, []string{"field"}),
		FallbackActive: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("Whether a %s configuration fallback is active (1) or not (0)", componentName),
		}, []string{"field"}),
	}
}

// RecordLoadTimestamp marks the configuration as loaded now.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.Set(float64(time.Now().Unix()))
}

// RecordValidationError counts one validation error for the field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts one applied fallback for the field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive flags whether the field currently runs on its
// fallback value.
func (m *ConfigMetrics) SetFallbackActive(field string, active bool) {
	v := 0.0
	if active {
		v = 1.0
	}
	m.FallbackActive.WithLabelValues(field).Set(v)
}
