package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// PerformanceReport is the result of static performance review of source code
type PerformanceReport struct {
	ComplexityClass string   `json:"complexityClass"` // O(1), O(n), O(n^2), O(n^3) or worse
	MaxLoopDepth    int      `json:"maxLoopDepth"`
	HasRecursion    bool     `json:"hasRecursion"`
	AntiPatterns    []string `json:"antiPatterns"`
	Suggestions     []string `json:"suggestions"`
}

var loopStartPattern = regexp.MustCompile(`(?m)^\s*(for|while)\b`)

// funcDefPatterns extract a function's own name per language family so
// recursion can be detected as a self-call
var funcDefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bdef\s+(\w+)\s*\(`),      // python
	regexp.MustCompile(`\bfunc\s+(\w+)\s*\(`),     // go
	regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`), // javascript
	regexp.MustCompile(`\b(?:public|private|protected|static|\s)+[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{`), // java/c-family
}

// antiPattern is a per-language regex with the message shown when it matches
type antiPattern struct {
	languages []string // empty means all languages
	pattern   *regexp.Regexp
	message   string
}

var antiPatterns = []antiPattern{
	{
		languages: []string{"python"},
		pattern:   regexp.MustCompile(`for\s+\w+\s+in\s+range\s*\(\s*len\s*\(`),
		message:   "Iterating with range(len(...)); iterate the sequence directly or use enumerate",
	},
	{
		languages: []string{"python"},
		pattern:   regexp.MustCompile(`(?m)^\s*\w+\s*\+=\s*["']|^\s*\w+\s*=\s*\w+\s*\+\s*["']`),
		message:   "String concatenation in assignment; inside loops prefer joining a list of parts",
	},
	{
		languages: []string{"javascript", "typescript"},
		pattern:   regexp.MustCompile(`for\s*\([^)]*;\s*\w+\s*<\s*\w+\.length\s*;`),
		message:   "Array length re-read every loop iteration; cache it or use for...of",
	},
	{
		languages: []string{"javascript", "typescript"},
		pattern:   regexp.MustCompile(`\.indexOf\s*\([^)]*\)\s*(!==?|>)\s*-?\d`),
		message:   "indexOf membership test; a Set lookup is O(1) instead of O(n)",
	},
	{
		languages: []string{"java"},
		pattern:   regexp.MustCompile(`String\s+\w+\s*=\s*"";|\w+\s*\+=\s*"`),
		message:   "String concatenation with +=; use StringBuilder inside loops",
	},
	{
		languages: []string{"go"},
		pattern:   regexp.MustCompile(`\bappend\s*\(\s*\w+\s*,[^)]*\)\s*$`),
		message:   "Repeated append without preallocation; size the slice with make when the length is known",
	},
	{
		pattern: regexp.MustCompile(`(?i)\bsleep\s*\(`),
		message: "Sleep call found; fixed delays usually hide a synchronization problem",
	},
}

// maxLoopDepth tracks loop nesting by brace/indent-free counting: a loop
// keyword increases depth for the duration of its block. This is approximate
// for brace languages and indentation-based for python, which is adequate
// for a heuristic complexity estimate.
func maxLoopDepth(source, language string) int {
	if language == "python" {
		return maxLoopDepthIndent(source)
	}
	return maxLoopDepthBraces(source)
}

func maxLoopDepthBraces(source string) int {
	depth, maxDepth := 0, 0
	// stack of brace depths at which a loop opened
	var loopDepths []int
	braceDepth := 0
	lines := strings.Split(source, "\n")
	for _, line := range lines {
		isLoop := loopStartPattern.MatchString(line)
		for _, ch := range line {
			switch ch {
			case '{':
				braceDepth++
				if isLoop {
					loopDepths = append(loopDepths, braceDepth)
					depth++
					if depth > maxDepth {
						maxDepth = depth
					}
					isLoop = false
				}
			case '}':
				for len(loopDepths) > 0 && loopDepths[len(loopDepths)-1] == braceDepth {
					loopDepths = loopDepths[:len(loopDepths)-1]
					depth--
				}
				braceDepth--
			}
		}
	}
	return maxDepth
}

func maxLoopDepthIndent(source string) int {
	maxDepth := 0
	// indent levels at which loops opened, innermost last
	var loopIndents []int
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		for len(loopIndents) > 0 && indent <= loopIndents[len(loopIndents)-1] {
			loopIndents = loopIndents[:len(loopIndents)-1]
		}
		if loopStartPattern.MatchString(line) {
			loopIndents = append(loopIndents, indent)
			if len(loopIndents) > maxDepth {
				maxDepth = len(loopIndents)
			}
		}
	}
	return maxDepth
}

// detectRecursion reports whether any defined function calls itself
func detectRecursion(source string) bool {
	for _, pattern := range funcDefPatterns {
		for _, match := range pattern.FindAllStringSubmatch(source, -1) {
			name := match[1]
			if name == "" || name == "main" {
				continue
			}
			// self-call anywhere after the definition counts
			calls := strings.Count(source, name+"(")
			if calls > 1 {
				return true
			}
		}
	}
	return false
}

// complexityClass estimates a big-O class from loop nesting and recursion
func complexityClass(loopDepth int, recursive bool) string {
	switch {
	case loopDepth >= 3:
		return "O(n^3) or worse"
	case loopDepth == 2:
		return "O(n^2)"
	case loopDepth == 1 && recursive:
		return "O(n^2) or worse"
	case loopDepth == 1 || recursive:
		return "O(n)"
	default:
		return "O(1)"
	}
}

// AnalyzeCodePerformance reviews source code with static heuristics: loop
// nesting for a complexity estimate, recursion detection, and per-language
// anti-pattern scans. The language must already be normalized to lowercase
// names like "python", "javascript", "go", "java".
func AnalyzeCodePerformance(source, language string) PerformanceReport {
	language = strings.ToLower(strings.TrimSpace(language))
	report := PerformanceReport{
		MaxLoopDepth: maxLoopDepth(source, language),
		HasRecursion: detectRecursion(source),
	}
	report.ComplexityClass = complexityClass(report.MaxLoopDepth, report.HasRecursion)

	for _, ap := range antiPatterns {
		if len(ap.languages) > 0 && !containsString(ap.languages, language) {
			continue
		}
		if ap.pattern.MatchString(source) {
			report.AntiPatterns = append(report.AntiPatterns, ap.message)
		}
	}

	if report.MaxLoopDepth >= 2 {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("Loop nesting reaches depth %d; consider a hash map or sorting to remove an inner scan", report.MaxLoopDepth))
	}
	if report.HasRecursion && !strings.Contains(strings.ToLower(source), "memo") && !strings.Contains(source, "lru_cache") {
		report.Suggestions = append(report.Suggestions,
			"Recursive calls without visible memoization; cache results if subproblems repeat")
	}
	report.Suggestions = append(report.Suggestions, report.AntiPatterns...)
	if len(report.Suggestions) == 0 {
		report.Suggestions = append(report.Suggestions, "No obvious performance issues found")
	}
	return report
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
