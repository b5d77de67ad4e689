package judge

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// NormalizeOutput prepares program output for comparison: CRLF becomes LF,
// trailing whitespace is stripped per line, and trailing blank lines are
// dropped.
func NormalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

const floatTolerance = 1e-6

// OutputsMatch compares expected and actual program output. Both sides are
// normalized first; then, in order: numeric compare when both parse as
// floats, order-insensitive compare when both look like bracketed array
// literals, exact string compare otherwise.
func OutputsMatch(expected, actual string) bool {
	expected = NormalizeOutput(expected)
	actual = NormalizeOutput(actual)

	if expected == actual {
		return true
	}

	if ok, match := compareNumeric(expected, actual); ok {
		return match
	}
	if ok, match := compareArrays(expected, actual); ok {
		return match
	}
	return false
}

// compareNumeric applies a tolerance compare when both outputs are single
// floats. The first return value reports whether the compare applied.
func compareNumeric(expected, actual string) (bool, bool) {
	e, errE := strconv.ParseFloat(strings.TrimSpace(expected), 64)
	a, errA := strconv.ParseFloat(strings.TrimSpace(actual), 64)
	if errE != nil || errA != nil {
		return false, false
	}
	return true, math.Abs(e-a) <= floatTolerance
}

// compareArrays applies an order-insensitive compare when both outputs are
// bracketed array literals like "[1, 2, 3]".
func compareArrays(expected, actual string) (bool, bool) {
	eItems, eOK := parseArrayLiteral(expected)
	aItems, aOK := parseArrayLiteral(actual)
	if !eOK || !aOK {
		return false, false
	}
	if len(eItems) != len(aItems) {
		return true, false
	}
	sort.Strings(eItems)
	sort.Strings(aItems)
	for i := range eItems {
		if eItems[i] != aItems[i] {
			return true, false
		}
	}
	return true, true
}

// parseArrayLiteral splits a single-line "[a, b, c]" literal into trimmed
// elements. Nested brackets are not treated as arrays.
func parseArrayLiteral(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || strings.Contains(s, "\n") {
		return nil, false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if strings.ContainsAny(inner, "[]") {
		return nil, false
	}
	if inner == "" {
		return []string{}, true
	}
	parts := strings.Split(inner, ",")
	items := make([]string, len(parts))
	for i, p := range parts {
		items[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return items, true
}
