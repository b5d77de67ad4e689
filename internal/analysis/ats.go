// Package analysis implements the deterministic text classifiers: ATS resume
// scoring, AI-generated-text detection, and static code performance review.
// Everything here is pure string heuristics with fixed weights, so results
// are reproducible and usable offline as fallbacks for AI-backed analysis.
package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// ATSReport is the weighted breakdown of an ATS resume scan
type ATSReport struct {
	Score           int            `json:"score"` // 0-100 weighted total
	Breakdown       map[string]int `json:"breakdown"`
	MatchedKeywords []string       `json:"matchedKeywords"`
	MissingKeywords []string       `json:"missingKeywords"`
	MissingSections []string       `json:"missingSections"`
	Strengths       []string       `json:"strengths"`
	Suggestions     []string       `json:"suggestions"`
}

// Component weights; they sum to 100
const (
	weightKeywords    = 40
	weightSections    = 25
	weightQuantified  = 15
	weightActionVerbs = 10
	weightLength      = 10
)

// expectedSections and the phrases that mark their presence
var sectionMarkers = map[string][]string{
	"experience": {"experience", "employment", "work history", "professional background"},
	"education":  {"education", "degree", "university", "college", "b.sc", "b.tech", "bachelor", "master"},
	"skills":     {"skills", "technologies", "tech stack", "competencies"},
	"contact":    {"@", "phone", "linkedin", "github", "email"},
}

var actionVerbs = []string{
	"achieved", "built", "created", "delivered", "designed", "developed",
	"improved", "implemented", "launched", "led", "managed", "optimized",
	"reduced", "shipped", "scaled", "automated", "migrated", "mentored",
}

// quantifiedPattern matches achievement statements carrying a number:
// percentages, currency, counts followed by a unit-ish word
var quantifiedPattern = regexp.MustCompile(`(?i)(\d+(\.\d+)?%|\$\d+|\d+x\b|\b\d{2,}\b)`)

// stopwords excluded from keyword extraction
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"will": true, "are": true, "our": true, "have": true, "that": true,
	"this": true, "from": true, "your": true, "who": true,
	"years": true, "work": true, "team": true, "role": true, "able": true,
	"must": true, "plus": true, "strong": true, "required": true,
	"preferred": true, "including": true, "etc": true, "about": true,
}

// tokenize splits text into lowercase alphanumeric tokens of length >= 3
func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '+' && r != '#'
	}) {
		if len(field) >= 3 && !stopwords[field] {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// extractKeywords returns the distinct significant tokens of a job
// description, most frequent first, capped at 30
func extractKeywords(jobDescription string) []string {
	counts := make(map[string]int)
	for _, tok := range tokenize(jobDescription) {
		counts[tok]++
	}
	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > 30 {
		keywords = keywords[:30]
	}
	return keywords
}

// ScoreATS scans resume text against a target role and optional job
// description and returns the weighted 0-100 score with its breakdown.
// With no job description, the keyword component is scored against the
// target role's own terms.
func ScoreATS(resume, targetRole, jobDescription string) ATSReport {
	report := ATSReport{Breakdown: make(map[string]int)}
	lower := strings.ToLower(resume)

	// Keyword overlap
	source := jobDescription
	if strings.TrimSpace(source) == "" {
		source = targetRole
	}
	keywords := extractKeywords(source)
	resumeTokens := make(map[string]bool)
	for _, tok := range tokenize(resume) {
		resumeTokens[tok] = true
	}
	for _, kw := range keywords {
		if resumeTokens[kw] {
			report.MatchedKeywords = append(report.MatchedKeywords, kw)
		} else {
			report.MissingKeywords = append(report.MissingKeywords, kw)
		}
	}
	if len(keywords) > 0 {
		report.Breakdown["keywords"] = weightKeywords * len(report.MatchedKeywords) / len(keywords)
	} else {
		report.Breakdown["keywords"] = weightKeywords / 2
	}
	if len(report.MissingKeywords) > 8 {
		report.MissingKeywords = report.MissingKeywords[:8]
	}

	// Section presence
	present := 0
	sections := make([]string, 0, len(sectionMarkers))
	for section := range sectionMarkers {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		found := false
		for _, marker := range sectionMarkers[section] {
			if strings.Contains(lower, marker) {
				found = true
				break
			}
		}
		if found {
			present++
		} else {
			report.MissingSections = append(report.MissingSections, section)
		}
	}
	report.Breakdown["sections"] = weightSections * present / len(sectionMarkers)

	// Quantified achievements: one point of density per numeric statement,
	// full marks at five or more
	quantified := len(quantifiedPattern.FindAllString(resume, -1))
	if quantified > 5 {
		quantified = 5
	}
	report.Breakdown["quantified"] = weightQuantified * quantified / 5

	// Action verb usage, full marks at four distinct verbs
	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbs++
		}
	}
	if verbs > 4 {
		verbs = 4
	}
	report.Breakdown["actionVerbs"] = weightActionVerbs * verbs / 4

	// Length sanity: 200-1200 words is the healthy band
	words := len(strings.Fields(resume))
	switch {
	case words >= 200 && words <= 1200:
		report.Breakdown["length"] = weightLength
	case words >= 100:
		report.Breakdown["length"] = weightLength / 2
	default:
		report.Breakdown["length"] = 0
	}

	for _, component := range report.Breakdown {
		report.Score += component
	}

	if report.Breakdown["keywords"] >= weightKeywords*3/4 {
		report.Strengths = append(report.Strengths, "Strong keyword alignment with the job description")
	}
	if len(report.MissingSections) == 0 {
		report.Strengths = append(report.Strengths, "All standard resume sections are present")
	}
	if quantified >= 3 {
		report.Strengths = append(report.Strengths, "Achievements are backed by concrete numbers")
	}

	if len(report.MissingKeywords) > 0 {
		report.Suggestions = append(report.Suggestions,
			"Work these terms into your experience bullets where true: "+strings.Join(report.MissingKeywords, ", "))
	}
	for _, section := range report.MissingSections {
		report.Suggestions = append(report.Suggestions, "Add a clearly labeled "+section+" section")
	}
	if quantified < 3 {
		report.Suggestions = append(report.Suggestions, "Quantify more achievements with numbers, percentages, or timeframes")
	}
	if words < 200 {
		report.Suggestions = append(report.Suggestions, "The resume is short; expand experience details toward at least one full page")
	} else if words > 1200 {
		report.Suggestions = append(report.Suggestions, "The resume is long; trim it to the most relevant two pages")
	}

	return report
}
