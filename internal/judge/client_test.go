package judge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"friede/internal/config"
	"friede/internal/errors"
)

func testJudgeConfig(baseURL string) *config.JudgeConfig {
	return &config.JudgeConfig{
		BaseURL:      baseURL,
		APIKey:       "rapid-key",
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
		PollBackoff:  1.5,
		MaxPolls:     5,
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(testJudgeConfig(baseURL), errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// judgeStub simulates Judge0: creation returns a token, then status polls
// return in-flight states before the terminal response.
type judgeStub struct {
	inFlightPolls int
	terminal      submissionResponse
	polls         int
	createBody    createSubmissionBody
	gotKey        string
}

func (j *judgeStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		j.gotKey = r.Header.Get("X-RapidAPI-Key")
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodPost && r.URL.Path == "/submissions" {
			_ = json.NewDecoder(r.Body).Decode(&j.createBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(createSubmissionResponse{Token: "tok-123"})
			return
		}

		if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/submissions/") {
			j.polls++
			if j.polls <= j.inFlightPolls {
				_ = json.NewEncoder(w).Encode(submissionResponse{
					Status: submissionStatus{ID: statusProcessing, Description: "Processing"},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(j.terminal)
			return
		}

		http.NotFound(w, r)
	})
}

func TestClientExecuteAccepted(t *testing.T) {
	stub := &judgeStub{
		inFlightPolls: 2,
		terminal: submissionResponse{
			Stdout: b64("hello\n"),
			Time:   "0.02",
			Memory: 3456,
			Status: submissionStatus{ID: statusAccepted, Description: "Accepted"},
		},
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	lang, _ := ResolveLanguage("python")
	result, err := client.Execute(context.Background(), lang, "print('hello')", "", "hello\n")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if result.Verdict != VerdictAccepted {
		t.Errorf("Expected verdict Accepted, got %q", result.Verdict)
	}
	if result.Stdout != "hello\n" {
		t.Errorf("Expected decoded stdout, got %q", result.Stdout)
	}
	if stub.gotKey != "rapid-key" {
		t.Errorf("Expected X-RapidAPI-Key header, got %q", stub.gotKey)
	}
	if stub.createBody.LanguageID != 71 {
		t.Errorf("Expected language ID 71, got %d", stub.createBody.LanguageID)
	}

	decodedSource, _ := base64.StdEncoding.DecodeString(stub.createBody.SourceCode)
	if string(decodedSource) != "print('hello')" {
		t.Errorf("Expected base64 source, decoded to %q", decodedSource)
	}
}

func TestClientExecuteNormalizesWrongAnswer(t *testing.T) {
	// Judge0 flags a byte mismatch, but our normalization accepts the
	// trailing-whitespace difference
	stub := &judgeStub{
		terminal: submissionResponse{
			Stdout: b64("42  \n\n"),
			Status: submissionStatus{ID: statusWrongAnswer, Description: "Wrong Answer"},
		},
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	lang, _ := ResolveLanguage("python")
	result, err := client.Execute(context.Background(), lang, "print(42)", "", "42")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if result.Verdict != VerdictAccepted {
		t.Errorf("Expected normalization to upgrade the verdict to Accepted, got %q", result.Verdict)
	}
}

func TestClientExecutePollTimeout(t *testing.T) {
	stub := &judgeStub{inFlightPolls: 1000}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	lang, _ := ResolveLanguage("python")
	result, err := client.Execute(context.Background(), lang, "while True: pass", "", "")
	if err == nil {
		t.Fatal("Expected a poll timeout error")
	}
	if result == nil || result.Verdict != VerdictProcessingTimeout {
		t.Errorf("Expected Processing Timeout verdict, got %+v", result)
	}
	if stub.polls != 5 {
		t.Errorf("Expected exactly 5 polls, got %d", stub.polls)
	}
}

func TestClientExecuteUnreachable(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	lang, _ := ResolveLanguage("python")
	_, err := client.Execute(context.Background(), lang, "print(1)", "", "")
	if err == nil {
		t.Fatal("Expected an error for an unreachable Judge0")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected an AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeJudgeUnavailable {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeJudgeUnavailable, appErr.Code)
	}
}

func TestClientCompilationError(t *testing.T) {
	stub := &judgeStub{
		terminal: submissionResponse{
			CompileOutput: b64("syntax error on line 1"),
			Status:        submissionStatus{ID: statusCompilationErr, Description: "Compilation Error"},
		},
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	lang, _ := ResolveLanguage("go")
	result, err := client.Execute(context.Background(), lang, "func broken", "", "anything")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if result.Verdict != VerdictCompilationError {
		t.Errorf("Expected Compilation Error, got %q", result.Verdict)
	}
	if result.CompileOutput != "syntax error on line 1" {
		t.Errorf("Expected decoded compile output, got %q", result.CompileOutput)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(&config.JudgeConfig{}, errors.NewLogger(slog.LevelError))
	if err == nil {
		t.Fatal("Expected an error when the base URL is missing")
	}
}
