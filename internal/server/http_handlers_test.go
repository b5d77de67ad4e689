package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"friede/internal/ai"
	"friede/internal/config"
	"friede/internal/errors"
	"friede/internal/judge"
)

// newHealthTestServer builds a server whose judge backend is the given URL,
// with no AI services registered.
func newHealthTestServer(t *testing.T, judgeURL string) *Server {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	appConfig := &config.Config{}
	appConfig.Observability.HealthCheck.Timeout = 2 * time.Second
	appConfig.Judge.BaseURL = judgeURL
	appConfig.Judge.Timeout = time.Second

	judgeService, err := judge.NewService(&appConfig.Judge, logger)
	if err != nil {
		t.Fatalf("Failed to create judge service: %v", err)
	}
	t.Cleanup(judgeService.Close)

	return &Server{
		AppConfig:    appConfig,
		Version:      "test",
		Logger:       logger,
		aiServices:   make(map[string]*ai.Service),
		JudgeService: judgeService,
	}
}

func TestHealthHandlerDegraded(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	s := newHealthTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if response["status"] != "degraded" {
		t.Errorf("Expected status 'degraded', got '%v'", response["status"])
	}
}

func TestHealthHandlerHealthy(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":109,"name":"Python (3.11.2)"}]`))
	}))
	defer backend.Close()

	s := newHealthTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got '%v'", response["status"])
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()

	s := newHealthTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
