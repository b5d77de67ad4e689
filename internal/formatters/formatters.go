package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"friede/internal/analysis"
	"friede/internal/aptitude"
	"friede/internal/judge"
	"friede/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "InterviewOutput", &InterviewTextFormatter{})
	registry.RegisterFormatter("markdown", "InterviewOutput", &InterviewMarkdownFormatter{})
	registry.RegisterFormatter("text", "FeedbackOutput", &FeedbackTextFormatter{})
	registry.RegisterFormatter("markdown", "FeedbackOutput", &FeedbackMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeOutput", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeOutput", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "CareerOutput", &CareerTextFormatter{})
	registry.RegisterFormatter("markdown", "CareerOutput", &CareerMarkdownFormatter{})
	registry.RegisterFormatter("text", "ATSReport", &ATSTextFormatter{})
	registry.RegisterFormatter("text", "AIDetectionReport", &AIDetectionTextFormatter{})
	registry.RegisterFormatter("text", "PerformanceReport", &PerformanceTextFormatter{})
	registry.RegisterFormatter("text", "AptitudeResult", &AptitudeTextFormatter{})
	registry.RegisterFormatter("text", "RunReport", &RunReportTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.InterviewOutput:
		return "InterviewOutput"
	case types.FeedbackOutput:
		return "FeedbackOutput"
	case types.ResumeOutput:
		return "ResumeOutput"
	case types.CareerOutput:
		return "CareerOutput"
	case analysis.ATSReport:
		return "ATSReport"
	case analysis.AIDetectionReport:
		return "AIDetectionReport"
	case analysis.PerformanceReport:
		return "PerformanceReport"
	case aptitude.Result:
		return "AptitudeResult"
	case judge.RunReport:
		return "RunReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// InterviewTextFormatter handles text formatting for mock interview sessions
type InterviewTextFormatter struct{}

func (itf *InterviewTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewOutput)
	if !ok {
		return "", fmt.Errorf("expected InterviewOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MOCK INTERVIEW ===\n\n")
	output.WriteString(fmt.Sprintf("Role: %s\n\n", result.Role))
	output.WriteString(result.Opening)
	output.WriteString("\n\n")

	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, q.Category, q.Question))
		if q.WhyAsked != "" {
			output.WriteString("   Why asked: ")
			output.WriteString(q.WhyAsked)
			output.WriteString("\n")
		}
		for _, hint := range q.Hints {
			output.WriteString(fmt.Sprintf("   Hint: %s\n", hint))
		}
		output.WriteString("\n")
	}

	if result.Provider != "" {
		output.WriteString(fmt.Sprintf("Served by: %s\n", result.Provider))
	}

	return output.String(), nil
}

func (itf *InterviewTextFormatter) SupportedType() string {
	return "InterviewOutput"
}

// InterviewMarkdownFormatter handles markdown formatting for mock interview sessions
type InterviewMarkdownFormatter struct{}

func (imf *InterviewMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewOutput)
	if !ok {
		return "", fmt.Errorf("expected InterviewOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Mock Interview\n\n")
	output.WriteString(fmt.Sprintf("**Role:** %s\n\n", result.Role))
	output.WriteString(result.Opening)
	output.WriteString("\n\n")

	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, q.Question))
		output.WriteString(fmt.Sprintf("**Category:** %s\n\n", q.Category))
		if q.WhyAsked != "" {
			output.WriteString("**Why asked:** ")
			output.WriteString(q.WhyAsked)
			output.WriteString("\n\n")
		}
		if len(q.Hints) > 0 {
			output.WriteString("**Hints:**\n")
			for _, hint := range q.Hints {
				output.WriteString(fmt.Sprintf("- %s\n", hint))
			}
			output.WriteString("\n")
		}
	}

	if result.Provider != "" {
		output.WriteString(fmt.Sprintf("_Served by %s_\n", result.Provider))
	}

	return output.String(), nil
}

func (imf *InterviewMarkdownFormatter) SupportedType() string {
	return "InterviewOutput"
}

// FeedbackTextFormatter handles text formatting for answer feedback
type FeedbackTextFormatter struct{}

func (ftf *FeedbackTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FeedbackOutput)
	if !ok {
		return "", fmt.Errorf("expected FeedbackOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ANSWER FEEDBACK ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Score, result.Verdict))

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(result.Improvements) > 0 {
		output.WriteString("Improvements:\n")
		for _, s := range result.Improvements {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if result.ModelAnswer != "" {
		output.WriteString("Model answer:\n")
		output.WriteString(result.ModelAnswer)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (ftf *FeedbackTextFormatter) SupportedType() string {
	return "FeedbackOutput"
}

// FeedbackMarkdownFormatter handles markdown formatting for answer feedback
type FeedbackMarkdownFormatter struct{}

func (fmf *FeedbackMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FeedbackOutput)
	if !ok {
		return "", fmt.Errorf("expected FeedbackOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Answer Feedback\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (%s)\n\n", result.Score, result.Verdict))

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(result.Improvements) > 0 {
		output.WriteString("## Improvements\n")
		for _, s := range result.Improvements {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if result.ModelAnswer != "" {
		output.WriteString("## Model Answer\n\n")
		output.WriteString(result.ModelAnswer)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (fmf *FeedbackMarkdownFormatter) SupportedType() string {
	return "FeedbackOutput"
}

// ResumeTextFormatter handles text formatting for resume analysis results
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString("Summary:\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.Skills) > 0 {
		output.WriteString(fmt.Sprintf("Skills: %s\n\n", strings.Join(result.Skills, ", ")))
	}
	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(result.Gaps) > 0 {
		output.WriteString("Gaps:\n")
		for _, g := range result.Gaps {
			output.WriteString(fmt.Sprintf("- %s\n", g))
		}
		output.WriteString("\n")
	}
	if result.RoleFit != "" {
		output.WriteString("Role fit:\n")
		output.WriteString(result.RoleFit)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeOutput"
}

// ResumeMarkdownFormatter handles markdown formatting for resume analysis results
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString("## Summary\n\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		output.WriteString(strings.Join(result.Skills, ", "))
		output.WriteString("\n\n")
	}
	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(result.Gaps) > 0 {
		output.WriteString("## Gaps\n")
		for _, g := range result.Gaps {
			output.WriteString(fmt.Sprintf("- %s\n", g))
		}
		output.WriteString("\n")
	}
	if result.RoleFit != "" {
		output.WriteString("## Role Fit\n\n")
		output.WriteString(result.RoleFit)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeOutput"
}

// CareerTextFormatter handles text formatting for career pathways
type CareerTextFormatter struct{}

func (ctf *CareerTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CareerOutput)
	if !ok {
		return "", fmt.Errorf("expected CareerOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CAREER PATHWAY ===\n\n")
	output.WriteString(fmt.Sprintf("Target role: %s\n", result.TargetRole))
	output.WriteString(fmt.Sprintf("Readiness: %d/100\n\n", result.Readiness))

	if len(result.MatchedSkills) > 0 {
		output.WriteString(fmt.Sprintf("Matched skills: %s\n", strings.Join(result.MatchedSkills, ", ")))
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString(fmt.Sprintf("Missing skills: %s\n", strings.Join(result.MissingSkills, ", ")))
	}
	output.WriteString("\n")

	if len(result.Milestones) > 0 {
		output.WriteString("Milestones:\n")
		for i, m := range result.Milestones {
			output.WriteString(fmt.Sprintf("%d. %s (%d weeks)\n", i+1, m.Title, m.DurationWeeks))
			if m.Description != "" {
				output.WriteString(fmt.Sprintf("   %s\n", m.Description))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Courses) > 0 {
		output.WriteString("Recommended courses:\n")
		for _, c := range result.Courses {
			output.WriteString(fmt.Sprintf("- %s (%s, for %s)\n", c.Title, c.Platform, c.Skill))
		}
	}

	return output.String(), nil
}

func (ctf *CareerTextFormatter) SupportedType() string {
	return "CareerOutput"
}

// CareerMarkdownFormatter handles markdown formatting for career pathways
type CareerMarkdownFormatter struct{}

func (cmf *CareerMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CareerOutput)
	if !ok {
		return "", fmt.Errorf("expected CareerOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Career Pathway\n\n")
	output.WriteString(fmt.Sprintf("**Target role:** %s\n\n", result.TargetRole))
	output.WriteString(fmt.Sprintf("**Readiness:** %d/100\n\n", result.Readiness))

	if len(result.MatchedSkills) > 0 {
		output.WriteString(fmt.Sprintf("**Matched skills:** %s\n\n", strings.Join(result.MatchedSkills, ", ")))
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString(fmt.Sprintf("**Missing skills:** %s\n\n", strings.Join(result.MissingSkills, ", ")))
	}

	if len(result.Milestones) > 0 {
		output.WriteString("## Milestones\n\n")
		for i, m := range result.Milestones {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, m.Title))
			output.WriteString(fmt.Sprintf("**Duration:** %d weeks\n\n", m.DurationWeeks))
			if m.Description != "" {
				output.WriteString(m.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(result.Courses) > 0 {
		output.WriteString("## Recommended Courses\n\n")
		for _, c := range result.Courses {
			output.WriteString(fmt.Sprintf("- **%s** on %s, for %s\n", c.Title, c.Platform, c.Skill))
		}
	}

	return output.String(), nil
}

func (cmf *CareerMarkdownFormatter) SupportedType() string {
	return "CareerOutput"
}

// ATSTextFormatter handles text formatting for ATS compatibility reports
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	result, ok := data.(analysis.ATSReport)
	if !ok {
		return "", fmt.Errorf("expected ATSReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n\n", result.Score))

	if len(result.Breakdown) > 0 {
		components := make([]string, 0, len(result.Breakdown))
		for name := range result.Breakdown {
			components = append(components, name)
		}
		sort.Strings(components)
		output.WriteString("Breakdown:\n")
		for _, name := range components {
			output.WriteString(fmt.Sprintf("- %s: %d\n", name, result.Breakdown[name]))
		}
		output.WriteString("\n")
	}

	if len(result.MatchedKeywords) > 0 {
		output.WriteString(fmt.Sprintf("Matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", ")))
	}
	if len(result.MissingKeywords) > 0 {
		output.WriteString(fmt.Sprintf("Missing keywords: %s\n", strings.Join(result.MissingKeywords, ", ")))
	}
	if len(result.MissingSections) > 0 {
		output.WriteString(fmt.Sprintf("Missing sections: %s\n", strings.Join(result.MissingSections, ", ")))
	}
	output.WriteString("\n")

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, s := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for _, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "ATSReport"
}

// AIDetectionTextFormatter handles text formatting for AI detection reports
type AIDetectionTextFormatter struct{}

func (adf *AIDetectionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(analysis.AIDetectionReport)
	if !ok {
		return "", fmt.Errorf("expected AIDetectionReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== AI DETECTION ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Score, result.Verdict))

	output.WriteString("Signals:\n")
	for _, sig := range result.Signals {
		marker := " "
		if sig.Fired {
			marker = "x"
		}
		output.WriteString(fmt.Sprintf("[%s] %s (weight %d)", marker, sig.Name, sig.Weight))
		if sig.Detail != "" {
			output.WriteString(": " + sig.Detail)
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (adf *AIDetectionTextFormatter) SupportedType() string {
	return "AIDetectionReport"
}

// PerformanceTextFormatter handles text formatting for code performance reports
type PerformanceTextFormatter struct{}

func (ptf *PerformanceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(analysis.PerformanceReport)
	if !ok {
		return "", fmt.Errorf("expected PerformanceReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CODE PERFORMANCE ===\n\n")
	output.WriteString(fmt.Sprintf("Estimated complexity: %s\n", result.ComplexityClass))
	output.WriteString(fmt.Sprintf("Max loop depth: %d\n", result.MaxLoopDepth))
	output.WriteString(fmt.Sprintf("Recursion: %t\n\n", result.HasRecursion))

	if len(result.AntiPatterns) > 0 {
		output.WriteString("Anti-patterns:\n")
		for _, p := range result.AntiPatterns {
			output.WriteString(fmt.Sprintf("- %s\n", p))
		}
		output.WriteString("\n")
	}
	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for _, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	return output.String(), nil
}

func (ptf *PerformanceTextFormatter) SupportedType() string {
	return "PerformanceReport"
}

// AptitudeTextFormatter handles text formatting for scored aptitude tests
type AptitudeTextFormatter struct{}

func (apf *AptitudeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(aptitude.Result)
	if !ok {
		return "", fmt.Errorf("expected aptitude Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== APTITUDE RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/%d (%d%%, %s)\n\n", result.Correct, result.Total, result.Percent, result.Band))

	if len(result.Categories) > 0 {
		categories := make([]string, 0, len(result.Categories))
		for name := range result.Categories {
			categories = append(categories, name)
		}
		sort.Strings(categories)
		output.WriteString("By category:\n")
		for _, name := range categories {
			cs := result.Categories[name]
			output.WriteString(fmt.Sprintf("- %s: %d/%d\n", name, cs.Correct, cs.Total))
		}
		output.WriteString("\n")
	}

	if len(result.Wrong) > 0 {
		output.WriteString("Review these:\n")
		for _, w := range result.Wrong {
			output.WriteString(fmt.Sprintf("- %s\n  Correct answer: %s\n", w.Prompt, w.CorrectOption))
		}
	}

	return output.String(), nil
}

func (apf *AptitudeTextFormatter) SupportedType() string {
	return "AptitudeResult"
}

// RunReportTextFormatter handles text formatting for judged code submissions
type RunReportTextFormatter struct{}

func (rrf *RunReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(judge.RunReport)
	if !ok {
		return "", fmt.Errorf("expected RunReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JUDGE RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Verdict: %s\n", result.Verdict))
	output.WriteString(fmt.Sprintf("Passed: %d/%d (%.0f%%)\n\n", result.Passed, result.Total, result.Score*100))

	for _, c := range result.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		output.WriteString(fmt.Sprintf("Case %d: %s (%s)\n", c.Index+1, status, c.Verdict))
		if !c.Passed && c.Stdout != "" {
			output.WriteString(fmt.Sprintf("  stdout: %s\n", c.Stdout))
		}
		if c.Stderr != "" {
			output.WriteString(fmt.Sprintf("  stderr: %s\n", c.Stderr))
		}
		if c.Error != "" {
			output.WriteString(fmt.Sprintf("  error: %s\n", c.Error))
		}
	}

	return output.String(), nil
}

func (rrf *RunReportTextFormatter) SupportedType() string {
	return "RunReport"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
