package ai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	frErrors "friede/internal/errors"
	"friede/internal/types"
)

// stubProvider returns fixed results or a fixed error for every operation
type stubProvider struct {
	name string
	err  error
}

func (s *stubProvider) GenerateInterview(_ context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error) {
	if s.err != nil {
		return types.InterviewOutput{}, nil, s.err
	}
	return types.InterviewOutput{Role: input.Role, Provider: s.name}, nil, nil
}

func (s *stubProvider) ScoreAnswer(_ context.Context, _ types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error) {
	if s.err != nil {
		return types.FeedbackOutput{}, nil, s.err
	}
	return types.FeedbackOutput{Score: 80, Provider: s.name}, nil, nil
}

func (s *stubProvider) AnalyzeResume(_ context.Context, _ types.ResumeInput) (types.ResumeOutput, *TokenUsage, error) {
	if s.err != nil {
		return types.ResumeOutput{}, nil, s.err
	}
	return types.ResumeOutput{Provider: s.name}, nil, nil
}

func (s *stubProvider) PlanCareer(_ context.Context, _ types.CareerInput) (types.CareerOutput, *TokenUsage, error) {
	if s.err != nil {
		return types.CareerOutput{}, nil, s.err
	}
	return types.CareerOutput{Provider: s.name}, nil, nil
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{Provider: s.name, Available: s.err == nil}
}

func (s *stubProvider) Close() error { return nil }

func testService(chain []chainEntry) *Service {
	return &Service{
		chain:         chain,
		operationType: "interview",
		logger:        frErrors.NewLogger(slog.LevelError),
	}
}

func TestDispatchFirstProviderSucceeds(t *testing.T) {
	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "primary"}},
		{provider: &stubProvider{name: "secondary"}},
	})

	out, _, err := svc.GenerateInterview(context.Background(), types.InterviewInput{Role: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if out.Provider != "primary" {
		t.Errorf("Expected the primary provider to serve the request, got %q", out.Provider)
	}
}

func TestDispatchFallsThroughOnError(t *testing.T) {
	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "primary", err: errors.New("upstream down")}},
		{provider: &stubProvider{name: "secondary"}},
	})

	out, _, err := svc.GenerateInterview(context.Background(), types.InterviewInput{Role: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Expected the second provider to serve, got error: %v", err)
	}
	if out.Provider != "secondary" {
		t.Errorf("Expected provider 'secondary', got %q", out.Provider)
	}
}

func TestDispatchSkipsProviderOverQuota(t *testing.T) {
	exhausted := &admission{quota: newDailyQuota(1)}
	if !exhausted.Allow() {
		t.Fatal("Setup: first take should succeed")
	}

	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "primary"}, admit: exhausted},
		{provider: &stubProvider{name: "secondary"}},
	})

	out, _, err := svc.ScoreAnswer(context.Background(), types.FeedbackInput{})
	if err != nil {
		t.Fatalf("Expected success from the next provider, got error: %v", err)
	}
	if out.Provider != "secondary" {
		t.Errorf("Expected the over-quota provider to be skipped, got %q", out.Provider)
	}
}

func TestDispatchAllProvidersFail(t *testing.T) {
	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "primary", err: errors.New("down")}},
		{provider: &stubProvider{name: "secondary", err: errors.New("also down")}},
	})

	_, _, err := svc.AnalyzeResume(context.Background(), types.ResumeInput{})
	if err == nil {
		t.Fatal("Expected an error when every provider fails")
	}

	var appErr *frErrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected an AppError, got %T", err)
	}
	if appErr.Code != frErrors.ErrCodeAIServiceFailed {
		t.Errorf("Expected code %s, got %s", frErrors.ErrCodeAIServiceFailed, appErr.Code)
	}
}

func TestDispatchFallbackTerminatesChain(t *testing.T) {
	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "primary", err: errors.New("down")}},
		{provider: NewFallbackProvider()},
	})

	out, _, err := svc.GenerateInterview(context.Background(), types.InterviewInput{Role: "Backend Engineer", Count: 3})
	if err != nil {
		t.Fatalf("Expected the fallback to serve, got error: %v", err)
	}
	if out.Provider != "fallback" {
		t.Errorf("Expected provider 'fallback', got %q", out.Provider)
	}
	if len(out.Questions) != 3 {
		t.Errorf("Expected 3 canned questions, got %d", len(out.Questions))
	}
}

func TestServiceQuotaStatus(t *testing.T) {
	gate := &admission{quota: newDailyQuota(5)}
	svc := testService([]chainEntry{
		{provider: &stubProvider{name: "gemini"}, admit: gate},
		{provider: NewFallbackProvider()},
	})

	status := svc.QuotaStatus()
	if status["gemini"] != 5 {
		t.Errorf("Expected 5 remaining for gemini, got %d", status["gemini"])
	}
	if _, ok := status["fallback"]; ok {
		t.Error("The fallback must not appear in quota status")
	}
}
