package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// One shared instance: promauto panics on duplicate registration.
var testMetrics = NewConfigMetrics("config_test")

func TestConfigMetrics_RecordLoadTimestamp(t *testing.T) {
	testMetrics.RecordLoadTimestamp()
	assert.Greater(t, testutil.ToFloat64(testMetrics.LoadTimestamp), 0.0)
}

func TestConfigMetrics_RecordValidationError(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.ValidationErrorsTotal.WithLabelValues("schedule"))
	testMetrics.RecordValidationError("schedule")
	after := testutil.ToFloat64(testMetrics.ValidationErrorsTotal.WithLabelValues("schedule"))
	assert.Equal(t, before+1, after)
}

func TestConfigMetrics_RecordFallback(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timezone"))
	testMetrics.RecordFallback("timezone")
	after := testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timezone"))
	assert.Equal(t, before+1, after)
}

func TestConfigMetrics_SetFallbackActive(t *testing.T) {
	testMetrics.SetFallbackActive("timezone", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.FallbackActive.WithLabelValues("timezone")))

	testMetrics.SetFallbackActive("timezone", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(testMetrics.FallbackActive.WithLabelValues("timezone")))
}
