package analysis

import (
	"strings"
	"testing"
)

func TestAnalyzeCodePerformanceComplexity(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		language      string
		expectedClass string
		expectedDepth int
	}{
		{
			name:          "no loops",
			source:        "func add(a, b int) int {\n\treturn a + b\n}\n",
			language:      "go",
			expectedClass: "O(1)",
			expectedDepth: 0,
		},
		{
			name:          "single loop go",
			source:        "func sum(xs []int) int {\n\ttotal := 0\n\tfor _, x := range xs {\n\t\ttotal += x\n\t}\n\treturn total\n}\n",
			language:      "go",
			expectedClass: "O(n)",
			expectedDepth: 1,
		},
		{
			name:          "nested loops go",
			source:        "func pairs(xs []int) {\n\tfor i := range xs {\n\t\tfor j := range xs {\n\t\t\t_ = i + j\n\t\t}\n\t}\n}\n",
			language:      "go",
			expectedClass: "O(n^2)",
			expectedDepth: 2,
		},
		{
			name:          "triple nested python",
			source:        "def cube(n):\n    for i in range(n):\n        for j in range(n):\n            for k in range(n):\n                print(i, j, k)\n",
			language:      "python",
			expectedClass: "O(n^3) or worse",
			expectedDepth: 3,
		},
		{
			name:          "sequential loops python",
			source:        "def twice(n):\n    for i in range(n):\n        print(i)\n    for j in range(n):\n        print(j)\n",
			language:      "python",
			expectedClass: "O(n)",
			expectedDepth: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeCodePerformance(tt.source, tt.language)
			if report.ComplexityClass != tt.expectedClass {
				t.Errorf("Expected class %q, got %q", tt.expectedClass, report.ComplexityClass)
			}
			if report.MaxLoopDepth != tt.expectedDepth {
				t.Errorf("Expected depth %d, got %d", tt.expectedDepth, report.MaxLoopDepth)
			}
		})
	}
}

func TestAnalyzeCodePerformanceRecursion(t *testing.T) {
	source := "def fib(n):\n    if n < 2:\n        return n\n    return fib(n-1) + fib(n-2)\n"
	report := AnalyzeCodePerformance(source, "python")
	if !report.HasRecursion {
		t.Error("Expected recursion to be detected")
	}

	found := false
	for _, s := range report.Suggestions {
		if strings.Contains(s, "memoization") {
			found = true
		}
	}
	if !found {
		t.Error("Expected a memoization suggestion for un-memoized recursion")
	}
}

func TestAnalyzeCodePerformanceMemoizedRecursionNoHint(t *testing.T) {
	source := "from functools import lru_cache\n\n@lru_cache\ndef fib(n):\n    if n < 2:\n        return n\n    return fib(n-1) + fib(n-2)\n"
	report := AnalyzeCodePerformance(source, "python")
	for _, s := range report.Suggestions {
		if strings.Contains(s, "memoization") {
			t.Error("Did not expect a memoization suggestion when lru_cache is present")
		}
	}
}

func TestAnalyzeCodePerformanceAntiPatterns(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		language string
		fragment string
	}{
		{
			name:     "python range len",
			source:   "def f(xs):\n    for i in range(len(xs)):\n        print(xs[i])\n",
			language: "python",
			fragment: "range(len",
		},
		{
			name:     "javascript length in condition",
			source:   "function f(xs) {\n  for (let i = 0; i < xs.length; i++) {\n    console.log(xs[i]);\n  }\n}\n",
			language: "javascript",
			fragment: "length",
		},
		{
			name:     "javascript indexOf membership",
			source:   "function has(xs, x) {\n  return xs.indexOf(x) !== -1;\n}\n",
			language: "javascript",
			fragment: "Set lookup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeCodePerformance(tt.source, tt.language)
			found := false
			for _, ap := range report.AntiPatterns {
				if strings.Contains(ap, tt.fragment) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected an anti-pattern mentioning %q, got %v", tt.fragment, report.AntiPatterns)
			}
		})
	}
}

func TestAnalyzeCodePerformanceCleanCode(t *testing.T) {
	report := AnalyzeCodePerformance("func id(x int) int { return x }\n", "go")
	if len(report.AntiPatterns) != 0 {
		t.Errorf("Expected no anti-patterns, got %v", report.AntiPatterns)
	}
	if len(report.Suggestions) != 1 || !strings.Contains(report.Suggestions[0], "No obvious") {
		t.Errorf("Expected the no-issues suggestion, got %v", report.Suggestions)
	}
}
