package textgen

import (
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/akozadaev/go_lunch_recommender/internal/resilience"
)

func TestBreakerConfigToleratesEmptyResponses(t *testing.T) {
	cfg := BreakerConfig()
	cb := resilience.NewBreaker[string](cfg)

	for i := 0; i < 3*int(cfg.MinRequests); i++ {
		_, _ = cb.Execute(func() (string, error) { return "", ErrEmptyResponse })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("State() = %v after empty responses, want closed", cb.State())
	}

	got, err := cb.Execute(func() (string, error) { return `{"teamConsensus":"ok"}`, nil })
	if err != nil || got == "" {
		t.Errorf("Execute() = %q, %v; want healthy response", got, err)
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(t.Context(), "", "gemini-2.0-flash", 0); err == nil {
		t.Error("NewGeminiClient() error = nil, want missing key error")
	}
}
