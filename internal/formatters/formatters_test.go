package formatters

import (
	"strings"
	"testing"

	"friede/internal/types"
)

func TestRegistryDispatch(t *testing.T) {
	registry := NewFormatterRegistry()

	interview := types.InterviewOutput{
		Role:    "Backend Engineer",
		Opening: "Hello, I'm FRIEDE.",
		Questions: []types.InterviewQuestion{
			{Category: "technical", Question: "Explain database indexing.", Hints: []string{"Mention B-trees."}},
		},
		Provider: "fallback",
	}

	t.Run("text formatter for interview output", func(t *testing.T) {
		out, err := registry.Format(interview, "text")
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		for _, want := range []string{"MOCK INTERVIEW", "Backend Engineer", "[technical]", "Hint: Mention B-trees."} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("markdown formatter for interview output", func(t *testing.T) {
		out, err := registry.Format(interview, "markdown")
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !strings.Contains(out, "# Mock Interview") {
			t.Errorf("Expected markdown heading, got:\n%s", out)
		}
	})

	t.Run("json falls back to generic formatter", func(t *testing.T) {
		out, err := registry.Format(interview, "json")
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !strings.Contains(out, `"opening": "Hello, I'm FRIEDE."`) {
			t.Errorf("Expected JSON field, got:\n%s", out)
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		if _, err := registry.Format(interview, "xml"); err == nil {
			t.Error("Expected error for unknown format")
		}
	})

	t.Run("markdown without a type-specific formatter errors", func(t *testing.T) {
		if _, err := registry.Format(struct{ X int }{1}, "markdown"); err == nil {
			t.Error("Expected error for unregistered type")
		}
	})
}

func TestFeedbackTextFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(types.FeedbackOutput{
		Score:        72,
		Verdict:      "promising",
		Strengths:    []string{"Concrete example"},
		Improvements: []string{"Quantify the impact"},
		ModelAnswer:  "A strong answer would start with the situation.",
	}, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	for _, want := range []string{"Score: 72/100 (promising)", "- Concrete example", "- Quantify the impact", "Model answer:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
