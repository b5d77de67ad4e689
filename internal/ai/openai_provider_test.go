package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"friede/internal/config"
	frErrors "friede/internal/errors"
	"friede/internal/types"
)

func newTestOperationConfig() *config.OperationAIConfig {
	timeout := 5 * time.Second
	maxRetries := 0
	temperature := float32(0.2)
	useSystemPrompts := true
	return &config.OperationAIConfig{
		Model:            "gpt-4o-mini",
		Timeout:          &timeout,
		MaxRetries:       &maxRetries,
		Temperature:      &temperature,
		UseSystemPrompts: &useSystemPrompts,
	}
}

func newTestOpenAIProvider(t *testing.T, baseURL string) *OpenAIProvider {
	t.Helper()
	provider, err := NewOpenAIProvider(
		config.ProviderConfig{BaseURL: baseURL, APIKey: "proxy-token"},
		newTestOperationConfig(),
		"feedback",
		frErrors.NewLogger(slog.LevelError),
	)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	return provider
}

func chatCompletionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{
			"prompt_tokens":     100,
			"completion_tokens": 50,
			"total_tokens":      150,
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestOpenAIProviderScoreAnswer(t *testing.T) {
	feedback := `{"score": 72, "verdict": "promising", "strengths": ["clear"], "improvements": ["add detail"], "modelAnswer": "..."}`

	var gotPath, gotAuth string
	var gotRequest chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody(feedback)))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	output, usage, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{
		Role:     "Backend Engineer",
		Question: "Explain database indexing",
		Answer:   "An index is a sorted lookup structure",
	})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if output.Score != 72 {
		t.Errorf("Expected score 72, got %d", output.Score)
	}
	if output.Provider != "openai" {
		t.Errorf("Expected provider 'openai', got %q", output.Provider)
	}
	if usage == nil || usage.TotalTokens != 150 {
		t.Errorf("Expected 150 total tokens, got %+v", usage)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("Expected chat completions path, got %q", gotPath)
	}
	if gotAuth != "Bearer proxy-token" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotRequest.ResponseFormat == nil || gotRequest.ResponseFormat.Type != "json_object" {
		t.Error("Expected response_format json_object in the request")
	}
	if len(gotRequest.Messages) != 2 || gotRequest.Messages[0].Role != "system" {
		t.Errorf("Expected system+user messages, got %+v", gotRequest.Messages)
	}
}

func TestOpenAIProviderFencedJSON(t *testing.T) {
	fenced := "```json\n{\"score\": 55, \"verdict\": \"adequate\", \"strengths\": [], \"improvements\": [], \"modelAnswer\": \"\"}\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatCompletionBody(fenced)))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	output, _, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{})
	if err != nil {
		t.Fatalf("Expected fenced JSON to parse, got error: %v", err)
	}
	if output.Score != 55 {
		t.Errorf("Expected score 55, got %d", output.Score)
	}
}

func TestOpenAIProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	_, _, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{})
	if err == nil {
		t.Fatal("Expected an error from a 400 response")
	}

	var appErr *frErrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected an AppError, got %T", err)
	}
	if appErr.Code != frErrors.ErrCodeAIServiceFailed {
		t.Errorf("Expected code %s, got %s", frErrors.ErrCodeAIServiceFailed, appErr.Code)
	}
}

func TestOpenAIProviderProxyErrorBody(t *testing.T) {
	body := `{"error": {"message": "model overloaded", "type": "server_error"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	_, _, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{})
	if err == nil {
		t.Fatal("Expected an error when the proxy reports one in the body")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("Expected the proxy error message to surface, got: %v", err)
	}
}

func TestOpenAIProviderRequiresBaseURL(t *testing.T) {
	_, err := NewOpenAIProvider(
		config.ProviderConfig{},
		newTestOperationConfig(),
		"feedback",
		frErrors.NewLogger(slog.LevelError),
	)
	if err == nil {
		t.Fatal("Expected an error when the base URL is missing")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no fence", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "surrounding whitespace", input: "  ```json\n{\"a\":1}\n```  ", expected: `{"a":1}`},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		if !retryableStatus(code) {
			t.Errorf("Expected status %d to be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		if retryableStatus(code) {
			t.Errorf("Expected status %d to not be retryable", code)
		}
	}
}
