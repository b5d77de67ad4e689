package analysis

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | linkedin.com/in/janedoe | +1 555 0100

Experience
Senior Backend Engineer, Acme Corp (2019-2024)
- Designed and built payment APIs in Go handling 50000 requests per day
- Reduced p99 latency by 40% by introducing Redis caching
- Led a team of 4 engineers and mentored two juniors
- Migrated the deployment pipeline to Kubernetes, cutting release time 3x

Education
B.Sc. Computer Science, State University

Skills
Go, PostgreSQL, Redis, Kubernetes, Docker, gRPC, Kafka`

const sampleJobDescription = `We are hiring a Backend Engineer to build payment
systems in Go. You will design APIs, work with PostgreSQL and Redis, deploy on
Kubernetes, and own services end to end. Experience with Kafka is a plus.`

func TestScoreATSWellMatchedResume(t *testing.T) {
	report := ScoreATS(sampleResume, "Backend Engineer", sampleJobDescription)

	if report.Score < 60 {
		t.Errorf("Expected score >= 60 for a well-matched resume, got %d (breakdown %v)", report.Score, report.Breakdown)
	}
	if len(report.MissingSections) != 0 {
		t.Errorf("Expected no missing sections, got %v", report.MissingSections)
	}
	if len(report.MatchedKeywords) == 0 {
		t.Error("Expected matched keywords against the job description")
	}

	total := 0
	for _, component := range report.Breakdown {
		total += component
	}
	if total != report.Score {
		t.Errorf("Breakdown sums to %d but score is %d", total, report.Score)
	}
}

func TestScoreATSEmptyResume(t *testing.T) {
	report := ScoreATS("", "Backend Engineer", sampleJobDescription)
	if report.Score > 25 {
		t.Errorf("Expected low score for empty resume, got %d", report.Score)
	}
	if len(report.MissingSections) != 4 {
		t.Errorf("Expected all 4 sections missing, got %v", report.MissingSections)
	}
	if len(report.Suggestions) == 0 {
		t.Error("Expected suggestions for an empty resume")
	}
}

func TestScoreATSNoJobDescriptionFallsBackToRole(t *testing.T) {
	report := ScoreATS(sampleResume, "backend engineer", "")
	for _, kw := range []string{"backend", "engineer"} {
		found := false
		for _, m := range report.MatchedKeywords {
			if m == kw {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected role keyword %q to be matched, got %v", kw, report.MatchedKeywords)
		}
	}
}

func TestScoreATSMissingKeywordsCapped(t *testing.T) {
	var jd strings.Builder
	jd.WriteString("We need experience with ")
	for _, kw := range []string{"elixir", "erlang", "haskell", "ocaml", "prolog", "fortran", "cobol", "scheme", "racket", "smalltalk", "simula", "algol"} {
		jd.WriteString(kw + " ")
	}
	report := ScoreATS(sampleResume, "Engineer", jd.String())
	if len(report.MissingKeywords) > 8 {
		t.Errorf("Expected missing keywords capped at 8, got %d", len(report.MissingKeywords))
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Go, PostgreSQL and C++ for the team!")
	joined := strings.Join(tokens, " ")
	if !strings.Contains(joined, "postgresql") {
		t.Errorf("Expected postgresql in tokens, got %v", tokens)
	}
	if strings.Contains(joined, "the") || strings.Contains(joined, "and") {
		t.Errorf("Expected stopwords removed, got %v", tokens)
	}
	if !strings.Contains(joined, "c++") {
		t.Errorf("Expected c++ preserved, got %v", tokens)
	}
}
