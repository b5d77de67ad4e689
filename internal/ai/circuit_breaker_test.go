package ai

import (
	"testing"
	"time"

	"friede/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each operation gets its own circuit breaker with its own settings

	interviewConfig := &config.OperationAIConfig{
		Model: "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	feedbackConfig := &config.OperationAIConfig{
		Model: "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.7,
		},
	}

	interviewCB := NewAICircuitBreaker("interview", interviewConfig, nil)
	feedbackCB := NewAICircuitBreaker("feedback", feedbackConfig, nil)

	t.Run("InterviewCircuitBreaker", func(t *testing.T) {
		stats := interviewCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "AI-gemini-interview" {
			t.Errorf("Expected circuit breaker name 'AI-gemini-interview', got '%s'", name)
		}

		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("FeedbackCircuitBreaker", func(t *testing.T) {
		stats := feedbackCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "AI-gemini-feedback" {
			t.Errorf("Expected circuit breaker name 'AI-gemini-feedback', got '%s'", name)
		}
	})

	t.Run("IndependentInstances", func(t *testing.T) {
		if interviewCB == feedbackCB {
			t.Error("Interview and feedback circuit breakers should be different instances")
		}
	})

	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !interviewCB.IsHealthy() {
			t.Error("Interview circuit breaker should be healthy initially")
		}
		if !feedbackCB.IsHealthy() {
			t.Error("Feedback circuit breaker should be healthy initially")
		}
	})
}

func TestHTTPCircuitBreakerNaming(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Model: "gpt-4o-mini",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	cb := NewHTTPCircuitBreaker("resume", cfg, nil)
	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "AI-openai-resume" {
		t.Errorf("Expected circuit breaker name 'AI-openai-resume', got '%s'", name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	disabledConfig := &config.OperationAIConfig{
		Model: "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	if cb := NewAICircuitBreaker("interview", disabledConfig, nil); cb != nil {
		t.Fatal("AI circuit breaker should be nil when disabled")
	}
	if cb := NewHTTPCircuitBreaker("interview", disabledConfig, nil); cb != nil {
		t.Fatal("HTTP circuit breaker should be nil when disabled")
	}
	if cb := NewModelCircuitBreaker("interview", disabledConfig, nil); cb != nil {
		t.Fatal("Model circuit breaker should be nil when disabled")
	}

	// Nil breakers stay nil-safe
	var nilCB *AICircuitBreaker
	if !nilCB.IsHealthy() {
		t.Error("Nil circuit breaker should report healthy")
	}
	stats := nilCB.GetStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Error("Nil circuit breaker stats should report enabled=false")
	}
}
