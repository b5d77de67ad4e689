package judge

import (
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"friede/internal/config"
	"friede/internal/errors"
)

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	cfg := testJudgeConfig(baseURL)
	cfg.Workers = 2
	cfg.QueueSize = 8
	cfg.MaxConcurrency = 2
	cfg.StoreTTL = time.Minute

	svc, err := NewService(cfg, errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func waitForTerminal(t *testing.T, svc *Service, id string) Submission {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		sub, err := svc.Get(id)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if sub.State == StateFinished || sub.State == StateFailed {
			return sub
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Submission did not reach a terminal state in time")
	return Submission{}
}

func TestServiceSubmitAndFinish(t *testing.T) {
	stub := &judgeStub{
		terminal: submissionResponse{
			Stdout: b64("4\n"),
			Status: submissionStatus{ID: statusAccepted, Description: "Accepted"},
		},
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	svc := newTestService(t, server.URL)
	sub, err := svc.Submit("python", "print(2+2)", "", []TestCase{{Input: "", ExpectedOutput: "4"}})
	if err != nil {
		t.Fatalf("Expected submission to be accepted, got: %v", err)
	}
	if sub.State != StateQueued {
		t.Errorf("Expected queued state, got %q", sub.State)
	}

	final := waitForTerminal(t, svc, sub.ID)
	if final.State != StateFinished {
		t.Fatalf("Expected finished, got %q (error %q)", final.State, final.Error)
	}
	if final.Report == nil || final.Report.Verdict != VerdictAccepted {
		t.Errorf("Expected an Accepted report, got %+v", final.Report)
	}
	if final.Report.Passed != 1 || final.Report.Total != 1 {
		t.Errorf("Expected 1/1 passed, got %d/%d", final.Report.Passed, final.Report.Total)
	}
}

func TestServiceUnknownLanguageRejectedBeforeNetwork(t *testing.T) {
	// No server at all: validation must fail before any network call
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.Submit("brainfuck", "+++", "", nil)
	if err == nil {
		t.Fatal("Expected a validation error for an unknown language")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected an AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeUnknownLanguage {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeUnknownLanguage, appErr.Code)
	}
}

func TestServiceEmptySourceRejected(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")
	if _, err := svc.Submit("python", "", "", nil); err == nil {
		t.Fatal("Expected a validation error for empty source")
	}
}

func TestServiceUnreachableJudgeMarksFailed(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	sub, err := svc.Submit("python", "print(1)", "", nil)
	if err != nil {
		t.Fatalf("Submit itself must succeed, got: %v", err)
	}

	final := waitForTerminal(t, svc, sub.ID)
	if final.State != StateFailed {
		t.Fatalf("Expected failed state, got %q", final.State)
	}
	if final.Error == "" {
		t.Error("Expected error detail on the failed submission")
	}
}

func TestServiceQueueDepth(t *testing.T) {
	cfg := &config.JudgeConfig{
		BaseURL:      "http://127.0.0.1:1",
		Timeout:      time.Second,
		PollInterval: time.Millisecond,
		PollBackoff:  1.5,
		MaxPolls:     1,
		Workers:      1,
		QueueSize:    4,
	}
	svc, err := NewService(cfg, errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	defer svc.Close()

	if depth := svc.QueueDepth(); depth != 0 {
		t.Errorf("Expected empty queue, got depth %d", depth)
	}
}
