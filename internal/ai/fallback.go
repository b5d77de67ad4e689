package ai

import (
	"context"
	"fmt"
	"strings"

	"friede/internal/analysis"
	"friede/internal/career"
	"friede/internal/types"
)

// FallbackProvider is the terminal provider in the chain. It serves canned
// interview content and heuristic analysis so that a session can always
// continue when every upstream AI provider is rate limited or down. It never
// returns an error.
type FallbackProvider struct{}

// Ensure FallbackProvider implements Provider
var _ Provider = (*FallbackProvider)(nil)

// NewFallbackProvider creates the canned fallback provider
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// Name implements Provider
func (f *FallbackProvider) Name() string { return "fallback" }

// roleFamily maps a free-form role string onto one of the canned banks
func roleFamily(role string) string {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "front"), strings.Contains(r, "react"), strings.Contains(r, "ui"):
		return "frontend"
	case strings.Contains(r, "data"), strings.Contains(r, "ml"), strings.Contains(r, "machine learning"), strings.Contains(r, "analyst"):
		return "data"
	case strings.Contains(r, "devops"), strings.Contains(r, "sre"), strings.Contains(r, "platform"), strings.Contains(r, "cloud"):
		return "devops"
	case strings.Contains(r, "back"), strings.Contains(r, "server"), strings.Contains(r, "api"), strings.Contains(r, "software"), strings.Contains(r, "engineer"), strings.Contains(r, "developer"):
		return "backend"
	default:
		return "generic"
	}
}

var cannedQuestions = map[string][]types.InterviewQuestion{
	"backend": {
		{
			Category: "technical",
			Question: "Walk me through what happens when a client sends an HTTP request to a service you own, from the load balancer to the response.",
			WhyAsked: "Tests whether the candidate understands the full request path rather than just their own handler code.",
			Hints:    []string{"Start at DNS and TLS termination", "Mention connection pooling and timeouts", "Do not forget logging and metrics on the way out"},
		},
		{
			Category: "technical",
			Question: "How would you design an endpoint that must stay responsive while calling a slow third-party API?",
			WhyAsked: "Probes familiarity with timeouts, retries, circuit breakers, and graceful degradation.",
			Hints:    []string{"Think about what the user sees during the slow call", "Consider caching or a queued/async design", "What happens when the third party is fully down?"},
		},
		{
			Category: "technical",
			Question: "Explain the difference between optimistic and pessimistic locking and when you would choose each.",
			WhyAsked: "Concurrency control trips up many otherwise strong backend candidates.",
			Hints:    []string{"Think about contention levels", "Consider retry cost versus blocking cost"},
		},
	},
	"frontend": {
		{
			Category: "technical",
			Question: "What causes unnecessary re-renders in a component tree, and how do you find and fix them?",
			WhyAsked: "Separates candidates who have profiled real applications from those who have only read tutorials.",
			Hints:    []string{"Mention referential equality of props", "Name an actual profiling tool you have used"},
		},
		{
			Category: "technical",
			Question: "How would you make a data-heavy page feel fast on a slow connection?",
			WhyAsked: "Tests practical performance instincts: loading states, code splitting, caching.",
			Hints:    []string{"Think about what renders first", "Consider skeletons versus spinners", "What can be cached between visits?"},
		},
	},
	"data": {
		{
			Category: "technical",
			Question: "You trained a model that performs well offline but poorly in production. Walk me through how you would debug that.",
			WhyAsked: "Tests understanding of training/serving skew, data drift, and evaluation discipline.",
			Hints:    []string{"Compare the feature distributions", "Check how labels were collected", "Is the offline metric the right proxy?"},
		},
		{
			Category: "technical",
			Question: "When would you prefer a simple linear model over a gradient-boosted ensemble?",
			WhyAsked: "Probes judgment about interpretability, data volume, and maintenance cost.",
			Hints:    []string{"Think about how much data you have", "Who has to explain the predictions?"},
		},
	},
	"devops": {
		{
			Category: "technical",
			Question: "A deploy went out and error rates doubled. Describe your first ten minutes.",
			WhyAsked: "Incident response instincts matter more than tooling trivia for this role.",
			Hints:    []string{"Roll back first or investigate first?", "What dashboards do you open?", "Who do you tell, and when?"},
		},
		{
			Category: "technical",
			Question: "How do you decide what should page a human versus what should only create a ticket?",
			WhyAsked: "Tests alerting philosophy and respect for on-call burden.",
			Hints:    []string{"Think in terms of user impact", "Consider actionability of the alert"},
		},
	},
	"generic": {
		{
			Category: "technical",
			Question: "Describe a technically difficult problem you solved recently. What made it hard?",
			WhyAsked: "An open prompt that reveals the candidate's actual depth on work they know best.",
			Hints:    []string{"Pick something you personally drove", "Explain the constraints before the solution"},
		},
	},
}

var behavioralQuestions = []types.InterviewQuestion{
	{
		Category: "behavioral",
		Question: "Tell me about a time you disagreed with a teammate on a technical decision. How was it resolved?",
		WhyAsked: "Collaboration under disagreement predicts team fit better than most technical signals.",
		Hints:    []string{"Use a real example with a concrete outcome", "Show what you learned, not who won"},
	},
	{
		Category: "behavioral",
		Question: "Describe a project that failed or was cancelled. What would you do differently?",
		WhyAsked: "Tests honesty and the ability to extract lessons from failure.",
		Hints:    []string{"Avoid blaming others", "Name one specific change in your own behavior"},
	},
	{
		Category: "situational",
		Question: "You are two days from a deadline and discover a bug that affects a small fraction of users. What do you do?",
		WhyAsked: "Probes judgment about risk, communication, and scope trade-offs.",
		Hints:    []string{"Who needs to know about the bug?", "Quantify the impact before deciding"},
	},
}

// GenerateInterview serves canned questions matched to the role family.
// The session is fully usable but clearly less personalized than an AI one.
func (f *FallbackProvider) GenerateInterview(_ context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error) {
	family := roleFamily(input.Role)
	bank := append([]types.InterviewQuestion{}, cannedQuestions[family]...)
	bank = append(bank, behavioralQuestions...)

	count := input.Count
	if count <= 0 {
		count = 5
	}
	if count > len(bank) {
		count = len(bank)
	}

	return types.InterviewOutput{
		Role: input.Role,
		Opening: fmt.Sprintf("Hello, I'm FRIEDE and I'll be your interviewer today. We'll go through %d questions for the %s role. Take your time with each answer; I care more about how you think than about perfect recall.",
			count, input.Role),
		Questions: bank[:count],
		Provider:  "fallback",
	}, nil, nil
}

// ScoreAnswer produces a heuristic assessment of the answer. It rewards
// length, structure, and overlap with the question's vocabulary.
func (f *FallbackProvider) ScoreAnswer(_ context.Context, input types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error) {
	answer := strings.TrimSpace(input.Answer)
	words := strings.Fields(answer)

	score := 30
	var strengths, improvements []string

	switch {
	case len(words) == 0:
		score = 0
		improvements = append(improvements, "No answer was provided.")
	case len(words) < 20:
		score = 20
		improvements = append(improvements, "The answer is very short. Aim for at least a few sentences that explain your reasoning.")
	case len(words) < 80:
		score = 50
		strengths = append(strengths, "The answer is focused and does not ramble.")
		improvements = append(improvements, "Add a concrete example or trade-off to deepen the answer.")
	default:
		score = 60
		strengths = append(strengths, "The answer has substantial depth.")
	}

	// Reward overlap with the question's own terms
	overlap := keywordOverlap(input.Question, answer)
	if overlap >= 3 {
		score += 10
		strengths = append(strengths, "The answer directly addresses the terms of the question.")
	} else if len(words) > 0 {
		improvements = append(improvements, "Tie your answer back to the specific question that was asked.")
	}

	// Reward structure markers
	lower := strings.ToLower(answer)
	for _, marker := range []string{"first", "second", "for example", "trade-off", "tradeoff", "because"} {
		if strings.Contains(lower, marker) {
			score += 2
		}
	}
	if score > 75 {
		score = 75 // heuristic scoring never awards top marks
	}

	verdict := "needs work"
	if score >= 60 {
		verdict = "adequate"
	}
	if score >= 70 {
		verdict = "promising"
	}

	return types.FeedbackOutput{
		Score:        score,
		Verdict:      verdict,
		Strengths:    strengths,
		Improvements: improvements,
		ModelAnswer:  "A strong answer states the core idea in the first sentence, supports it with one concrete example from experience, names the main trade-off involved, and closes by connecting back to the question.",
		Provider:     "fallback",
	}, nil, nil
}

// keywordOverlap counts distinct significant words shared by two texts
func keywordOverlap(a, b string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		w = strings.Trim(w, ".,?!;:\"'()")
		if len(w) > 4 {
			seen[w] = true
		}
	}
	overlap := 0
	counted := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		w = strings.Trim(w, ".,?!;:\"'()")
		if seen[w] && !counted[w] {
			overlap++
			counted[w] = true
		}
	}
	return overlap
}

// AnalyzeResume reuses the deterministic ATS scorer so that the offline
// answer stays consistent with the dedicated ATS endpoint.
func (f *FallbackProvider) AnalyzeResume(_ context.Context, input types.ResumeInput) (types.ResumeOutput, *TokenUsage, error) {
	report := analysis.ScoreATS(input.Resume, input.TargetRole, input.JobDescription)

	var gaps []string
	for _, kw := range report.MissingKeywords {
		gaps = append(gaps, "No mention of "+kw)
	}
	for _, section := range report.MissingSections {
		gaps = append(gaps, "Missing a "+section+" section")
	}

	roleFit := "The resume shows limited alignment with the target role."
	switch {
	case report.Score >= 75:
		roleFit = "The resume aligns well with the target role; most expected keywords and sections are present."
	case report.Score >= 50:
		roleFit = "The resume partially aligns with the target role; closing the listed gaps would improve its chances considerably."
	}

	return types.ResumeOutput{
		Summary: fmt.Sprintf("Deterministic scan of the resume against the %s role: ATS score %d/100 with %d matched keywords.",
			input.TargetRole, report.Score, len(report.MatchedKeywords)),
		Skills:    report.MatchedKeywords,
		Strengths: report.Strengths,
		Gaps:      gaps,
		RoleFit:   roleFit,
		Provider:  "fallback",
	}, nil, nil
}

// PlanCareer serves the static pathway plan built from curated role maps.
func (f *FallbackProvider) PlanCareer(_ context.Context, input types.CareerInput) (types.CareerOutput, *TokenUsage, error) {
	plan := career.StaticPlan(input.CurrentSkills, input.TargetRole, input.ExperienceYears)

	milestones := make([]types.Milestone, len(plan.Milestones))
	for i, m := range plan.Milestones {
		milestones[i] = types.Milestone{
			Title:         m.Title,
			Description:   m.Description,
			DurationWeeks: m.DurationWeeks,
		}
	}
	courses := make([]types.CourseRecommendation, len(plan.Courses))
	for i, c := range plan.Courses {
		courses[i] = types.CourseRecommendation{Skill: c.Skill, Title: c.Title, Platform: c.Platform}
	}

	return types.CareerOutput{
		TargetRole:    plan.TargetRole,
		Readiness:     plan.Readiness,
		MatchedSkills: plan.MatchedSkills,
		MissingSkills: plan.MissingSkills,
		Milestones:    milestones,
		Courses:       courses,
		Provider:      "fallback",
	}, nil, nil
}

// GetModelInfo implements Provider; the fallback is always available
func (f *FallbackProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{
		Provider:  "fallback",
		Name:      "canned",
		Available: true,
	}
}

// Close implements Provider
func (f *FallbackProvider) Close() error { return nil }
