package ai

import (
	"context"
	"strings"
	"testing"

	"friede/internal/types"
)

func TestFallbackGenerateInterview(t *testing.T) {
	provider := NewFallbackProvider()

	tests := []struct {
		name  string
		role  string
		count int
	}{
		{name: "backend role", role: "Senior Backend Engineer", count: 4},
		{name: "frontend role", role: "React Developer", count: 3},
		{name: "unknown role", role: "Basket Weaver", count: 2},
		{name: "zero count uses default", role: "Backend Engineer", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, usage, err := provider.GenerateInterview(context.Background(), types.InterviewInput{
				Role:  tt.role,
				Count: tt.count,
			})
			if err != nil {
				t.Fatalf("Fallback must never fail, got: %v", err)
			}
			if usage != nil {
				t.Error("Fallback must not report token usage")
			}
			if out.Provider != "fallback" {
				t.Errorf("Expected provider 'fallback', got %q", out.Provider)
			}
			if !strings.Contains(out.Opening, "FRIEDE") {
				t.Errorf("Expected the FRIEDE persona opening, got %q", out.Opening)
			}

			expected := tt.count
			if expected == 0 {
				expected = 5
			}
			if len(out.Questions) != expected {
				t.Errorf("Expected %d questions, got %d", expected, len(out.Questions))
			}
			for _, q := range out.Questions {
				if q.Question == "" || q.Category == "" {
					t.Errorf("Question missing content: %+v", q)
				}
			}
		})
	}
}

func TestFallbackScoreAnswer(t *testing.T) {
	provider := NewFallbackProvider()

	tests := []struct {
		name     string
		answer   string
		maxScore int
		minScore int
	}{
		{name: "empty answer", answer: "", minScore: 0, maxScore: 0},
		{name: "one-liner", answer: "Indexes make queries fast.", minScore: 1, maxScore: 35},
		{
			name: "substantial answer",
			answer: `An index is a sorted structure the database maintains alongside the table.
For example, a B-tree index on the email column lets the engine find a row without
scanning everything. The trade-off is write amplification because every insert has
to update the index too, so I would only index columns that queries actually filter on.`,
			minScore: 50,
			maxScore: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{
				Question: "How does a database index work and what are the trade-offs?",
				Answer:   tt.answer,
			})
			if err != nil {
				t.Fatalf("Fallback must never fail, got: %v", err)
			}
			if out.Score < tt.minScore || out.Score > tt.maxScore {
				t.Errorf("Expected score in [%d,%d], got %d", tt.minScore, tt.maxScore, out.Score)
			}
			if out.Provider != "fallback" {
				t.Errorf("Expected provider 'fallback', got %q", out.Provider)
			}
			if out.ModelAnswer == "" {
				t.Error("Expected a model answer")
			}
		})
	}
}

func TestFallbackScoreNeverExceedsCap(t *testing.T) {
	provider := NewFallbackProvider()
	answer := strings.Repeat("First, because the trade-off matters, for example indexing works well. ", 30)
	out, _, err := provider.ScoreAnswer(context.Background(), types.FeedbackInput{
		Question: "Explain indexing trade-offs with an example",
		Answer:   answer,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Score > 75 {
		t.Errorf("Heuristic score must cap at 75, got %d", out.Score)
	}
}

func TestFallbackAnalyzeResume(t *testing.T) {
	provider := NewFallbackProvider()
	out, _, err := provider.AnalyzeResume(context.Background(), types.ResumeInput{
		Resume:     "Experience\nBuilt Go services.\nEducation\nB.Sc.\nSkills\nGo, SQL\nemail@example.com",
		TargetRole: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("Fallback must never fail, got: %v", err)
	}
	if out.Provider != "fallback" {
		t.Errorf("Expected provider 'fallback', got %q", out.Provider)
	}
	if out.Summary == "" || out.RoleFit == "" {
		t.Error("Expected a summary and role fit assessment")
	}
}

func TestFallbackPlanCareer(t *testing.T) {
	provider := NewFallbackProvider()
	out, _, err := provider.PlanCareer(context.Background(), types.CareerInput{
		CurrentSkills:   []string{"Go", "SQL"},
		TargetRole:      "Backend Engineer",
		ExperienceYears: 2,
	})
	if err != nil {
		t.Fatalf("Fallback must never fail, got: %v", err)
	}
	if out.Provider != "fallback" {
		t.Errorf("Expected provider 'fallback', got %q", out.Provider)
	}
	if out.TargetRole != "Backend Engineer" {
		t.Errorf("Expected target role preserved, got %q", out.TargetRole)
	}
	if len(out.Milestones) == 0 || len(out.MissingSkills) == 0 {
		t.Error("Expected milestones and missing skills for a partial skill set")
	}
}

func TestRoleFamily(t *testing.T) {
	tests := []struct {
		role     string
		expected string
	}{
		{role: "Frontend Developer", expected: "frontend"},
		{role: "Data Analyst", expected: "data"},
		{role: "SRE", expected: "devops"},
		{role: "Software Engineer", expected: "backend"},
		{role: "Chef", expected: "generic"},
	}
	for _, tt := range tests {
		if got := roleFamily(tt.role); got != tt.expected {
			t.Errorf("roleFamily(%q) = %q, expected %q", tt.role, got, tt.expected)
		}
	}
}
