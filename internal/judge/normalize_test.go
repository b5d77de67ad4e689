package judge

import "testing"

func TestNormalizeOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "crlf", input: "a\r\nb\r\n", expected: "a\nb"},
		{name: "trailing spaces", input: "a  \nb\t\n", expected: "a\nb"},
		{name: "trailing blank lines", input: "a\nb\n\n\n", expected: "a\nb"},
		{name: "interior blank lines kept", input: "a\n\nb", expected: "a\n\nb"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: "  \n\t\n", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeOutput(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOutputsMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		match    bool
	}{
		{name: "exact", expected: "hello", actual: "hello", match: true},
		{name: "trailing newline", expected: "hello\n", actual: "hello", match: true},
		{name: "crlf vs lf", expected: "a\r\nb", actual: "a\nb", match: true},
		{name: "different", expected: "hello", actual: "world", match: false},
		{name: "float within tolerance", expected: "3.14159265", actual: "3.14159290", match: true},
		{name: "float outside tolerance", expected: "3.14", actual: "3.15", match: false},
		{name: "integer as float", expected: "42", actual: "42.0000001", match: true},
		{name: "array order insensitive", expected: "[1, 2, 3]", actual: "[3, 1, 2]", match: true},
		{name: "array different elements", expected: "[1, 2, 3]", actual: "[1, 2, 4]", match: false},
		{name: "array different length", expected: "[1, 2]", actual: "[1, 2, 3]", match: false},
		{name: "array quoted elements", expected: `["a", "b"]`, actual: `['b', 'a']`, match: true},
		{name: "empty arrays", expected: "[]", actual: "[ ]", match: true},
		{name: "nested arrays exact only", expected: "[[1], [2]]", actual: "[[2], [1]]", match: false},
		{name: "multiline not array", expected: "[1\n2]", actual: "[2\n1]", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputsMatch(tt.expected, tt.actual); got != tt.match {
				t.Errorf("OutputsMatch(%q, %q) = %v, expected %v", tt.expected, tt.actual, got, tt.match)
			}
		})
	}
}

func TestVerdictForStatus(t *testing.T) {
	tests := []struct {
		statusID int
		verdict  string
	}{
		{statusID: 3, verdict: VerdictAccepted},
		{statusID: 4, verdict: VerdictWrongAnswer},
		{statusID: 5, verdict: VerdictTimeLimitExceeded},
		{statusID: 6, verdict: VerdictCompilationError},
		{statusID: 7, verdict: VerdictRuntimeError},
		{statusID: 11, verdict: VerdictRuntimeError},
		{statusID: 12, verdict: VerdictRuntimeError},
		{statusID: 13, verdict: VerdictInternalError},
		{statusID: 14, verdict: VerdictExecFormatError},
		{statusID: 99, verdict: VerdictUnknown},
	}

	for _, tt := range tests {
		if got := verdictForStatus(tt.statusID); got != tt.verdict {
			t.Errorf("verdictForStatus(%d) = %q, expected %q", tt.statusID, got, tt.verdict)
		}
	}

	for _, id := range []int{1, 2} {
		if isTerminalStatus(id) {
			t.Errorf("Status %d should not be terminal", id)
		}
	}
	for _, id := range []int{3, 4, 13, 14} {
		if !isTerminalStatus(id) {
			t.Errorf("Status %d should be terminal", id)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expectedID int
		expectErr  bool
	}{
		{name: "python", input: "python", expectedID: 71},
		{name: "alias py", input: "py", expectedID: 71},
		{name: "alias js", input: "js", expectedID: 63},
		{name: "alias c++", input: "C++", expectedID: 54},
		{name: "alias golang", input: "golang", expectedID: 60},
		{name: "case insensitive", input: "  Java ", expectedID: 62},
		{name: "unknown", input: "brainfuck", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := ResolveLanguage(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if lang.ID != tt.expectedID {
				t.Errorf("Expected language ID %d, got %d", tt.expectedID, lang.ID)
			}
		})
	}
}
