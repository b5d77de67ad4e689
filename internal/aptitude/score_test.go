package aptitude

import (
	"testing"
)

func TestAssembleTestDeterministic(t *testing.T) {
	first := AssembleTest(42, 2)
	second := AssembleTest(42, 2)

	if len(first) != len(second) {
		t.Fatalf("Same seed produced different sizes: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("Same seed produced different papers at index %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	other := AssembleTest(7, 2)
	same := len(other) == len(first)
	if same {
		identical := true
		for i := range first {
			if first[i].ID != other[i].ID {
				identical = false
				break
			}
		}
		if identical {
			t.Error("Different seeds produced an identical paper order")
		}
	}
}

func TestAssembleTestCategoryMix(t *testing.T) {
	test := AssembleTest(1, 2)

	counts := map[string]int{}
	seen := map[string]bool{}
	for _, q := range test {
		counts[q.Category]++
		if seen[q.ID] {
			t.Errorf("Question %s appears twice", q.ID)
		}
		seen[q.ID] = true
	}

	for _, category := range Categories() {
		if counts[category] != 2 {
			t.Errorf("Expected 2 questions for %s, got %d", category, counts[category])
		}
	}
}

func TestAssembleTestClampsToBank(t *testing.T) {
	test := AssembleTest(1, 1000)
	if len(test) != BankSize() {
		t.Errorf("Expected the whole bank (%d questions), got %d", BankSize(), len(test))
	}
}

func TestScore(t *testing.T) {
	answers := []Answer{
		{QuestionID: "q-easy-1", SelectedIndex: 1}, // correct
		{QuestionID: "q-easy-2", SelectedIndex: 0}, // wrong
		{QuestionID: "l-easy-1", SelectedIndex: 2}, // correct
		{QuestionID: "v-easy-1", SelectedIndex: 1}, // correct
	}

	result, err := Score(answers)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Correct != 3 || result.Total != 4 {
		t.Errorf("Expected 3/4, got %d/%d", result.Correct, result.Total)
	}
	if result.Percent != 75 {
		t.Errorf("Expected 75 percent, got %d", result.Percent)
	}
	if result.Band != "above average" {
		t.Errorf("Expected band 'above average', got %q", result.Band)
	}

	quant := result.Categories[CategoryQuantitative]
	if quant.Correct != 1 || quant.Total != 2 {
		t.Errorf("Expected quantitative 1/2, got %d/%d", quant.Correct, quant.Total)
	}

	if len(result.Wrong) != 1 || result.Wrong[0].QuestionID != "q-easy-2" {
		t.Errorf("Expected one wrong answer for q-easy-2, got %+v", result.Wrong)
	}
	if result.Wrong[0].CorrectOption != "30" {
		t.Errorf("Expected correct option '30', got %q", result.Wrong[0].CorrectOption)
	}
}

func TestScoreRejectsBadInput(t *testing.T) {
	if _, err := Score(nil); err == nil {
		t.Error("Expected an error for empty answers")
	}
	if _, err := Score([]Answer{{QuestionID: "nope", SelectedIndex: 0}}); err == nil {
		t.Error("Expected an error for an unknown question ID")
	}
	if _, err := Score([]Answer{
		{QuestionID: "q-easy-1", SelectedIndex: 1},
		{QuestionID: "q-easy-1", SelectedIndex: 2},
	}); err == nil {
		t.Error("Expected an error for duplicate answers")
	}
}

func TestPercentileBands(t *testing.T) {
	tests := []struct {
		percent int
		band    string
	}{
		{percent: 100, band: "excellent"},
		{percent: 85, band: "excellent"},
		{percent: 70, band: "above average"},
		{percent: 50, band: "average"},
		{percent: 30, band: "below average"},
		{percent: 0, band: "needs practice"},
	}
	for _, tt := range tests {
		if got := percentileBand(tt.percent); got != tt.band {
			t.Errorf("percentileBand(%d) = %q, expected %q", tt.percent, got, tt.band)
		}
	}
}
