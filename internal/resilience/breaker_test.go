package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

var errExpected = errors.New("expected outcome")

func callN(cb *gobreaker.CircuitBreaker[string], n int, err error) {
	for i := 0; i < n; i++ {
		_, _ = cb.Execute(func() (string, error) { return "", err })
	}
}

func TestBreakerTripsOnFailures(t *testing.T) {
	cfg := DefaultBreakerConfig("test-trips")
	cb := NewBreaker[string](cfg)

	callN(cb, int(cfg.MinRequests), errors.New("503 service unavailable"))

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", cb.State())
	}
	_, err := cb.Execute(func() (string, error) { return "ok", nil })
	if !IsUnavailable(err) {
		t.Errorf("Execute() error = %v, want breaker rejection", err)
	}
}

func TestBreakerNeedsMinimumRequests(t *testing.T) {
	cfg := DefaultBreakerConfig("test-min-requests")
	cb := NewBreaker[string](cfg)

	callN(cb, int(cfg.MinRequests)-1, errors.New("boom"))

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed below MinRequests", cb.State())
	}
}

func TestBreakerIgnoresNonFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"expected error", errExpected},
		{"wrapped expected error", fmt.Errorf("generate: %w", errExpected)},
		{"caller canceled", context.Canceled},
		{"deadline exceeded", fmt.Errorf("request: %w", context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBreakerConfig("test-" + tt.name)
			cfg.ExpectedErrors = []error{errExpected}
			cb := NewBreaker[string](cfg)

			callN(cb, 3*int(cfg.MinRequests), tt.err)

			if cb.State() != gobreaker.StateClosed {
				t.Fatalf("State() = %v, want closed", cb.State())
			}
			got, err := cb.Execute(func() (string, error) { return "ok", nil })
			if err != nil || got != "ok" {
				t.Errorf("Execute() = %q, %v; want ok, nil", got, err)
			}
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{gobreaker.ErrOpenState, true},
		{gobreaker.ErrTooManyRequests, true},
		{fmt.Errorf("generate: %w", gobreaker.ErrOpenState), true},
	}

	for _, tt := range tests {
		if got := IsUnavailable(tt.err); got != tt.want {
			t.Errorf("IsUnavailable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
