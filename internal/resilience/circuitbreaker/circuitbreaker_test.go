package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb == nil {
		t.Fatal("expected circuit breaker, got nil")
	}
	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected result='success', got %v", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected state=Closed after success, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute_Failure(t *testing.T) {
	cb := New(testConfig())

	testErr := errors.New("test error")
	result, err := cb.Execute(func() (interface{}, error) {
		return nil, testErr
	})

	if !errors.Is(err, testErr) {
		t.Errorf("expected error=%v, got %v", testErr, err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
	// A single failure below MinRequests must not trip the circuit.
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 3
	cb := New(cfg)

	testErr := errors.New("backend down")
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, testErr
		})
	}

	if !cb.IsOpen() {
		t.Errorf("expected open circuit after repeated failures, got %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		return "should not run", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestProfiles(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default", DefaultConfig("svc")},
		{"channel fetch", ChannelFetchConfig()},
		{"webhook", WebhookConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.Name == "" {
				t.Error("profile must set a name")
			}
			if tt.cfg.FailureThreshold <= 0 || tt.cfg.FailureThreshold > 1 {
				t.Errorf("threshold out of range: %v", tt.cfg.FailureThreshold)
			}
			if tt.cfg.MinRequests == 0 {
				t.Error("profile must require a minimum request count")
			}
		})
	}
}
