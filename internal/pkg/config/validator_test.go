package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"daily at 5:30", "30 5 * * *", false},
		{"every 6 hours", "0 */6 * * *", false},
		{"weekdays at 9:30", "30 9 * * 1-5", false},
		{"empty", "", true},
		{"too few fields", "30 5 *", true},
		{"invalid minute", "99 5 * * *", true},
		{"garbage", "whenever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Europe/Kyiv"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus_Mons"))
	assert.Error(t, ValidateTimezone("+09:00"))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(time.Minute, time.Hour, time.Second), "inverted range")
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(8081, 1024, 65535))
	assert.Error(t, ValidateIntRange(80, 1024, 65535))
	assert.Error(t, ValidateIntRange(70000, 1024, 65535))
	assert.Error(t, ValidateIntRange(5, 10, 1), "inverted range")
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
