package ai

import (
	"context"

	"friede/internal/types"
)

// Provider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type Provider interface {
	GenerateInterview(ctx context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error)
	ScoreAnswer(ctx context.Context, input types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error)
	AnalyzeResume(ctx context.Context, input types.ResumeInput) (types.ResumeOutput, *TokenUsage, error)
	PlanCareer(ctx context.Context, input types.CareerInput) (types.CareerOutput, *TokenUsage, error)
	Name() string
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Provider    string `json:"provider"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
