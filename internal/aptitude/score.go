package aptitude

import (
	"fmt"
	"math/rand"
	"sort"

	"friede/internal/errors"
)

// AssembleTest builds a deterministic test from the bank: questions per
// category are drawn across all difficulties and shuffled with the given
// seed, so the same seed always produces the same paper. perCategory is
// clamped to what the bank can supply.
func AssembleTest(seed int64, perCategory int) []Question {
	if perCategory <= 0 {
		perCategory = 2
	}

	rng := rand.New(rand.NewSource(seed))
	var test []Question

	for _, category := range Categories() {
		byDifficulty := map[string][]Question{}
		for _, q := range questionBank {
			if q.Category == category {
				byDifficulty[q.Difficulty] = append(byDifficulty[q.Difficulty], q)
			}
		}

		// Draw round-robin across difficulties so every paper has a spread
		picked := make([]Question, 0, perCategory)
		for len(picked) < perCategory {
			added := false
			for _, difficulty := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
				pool := byDifficulty[difficulty]
				if len(pool) == 0 || len(picked) >= perCategory {
					continue
				}
				idx := rng.Intn(len(pool))
				picked = append(picked, pool[idx])
				byDifficulty[difficulty] = append(pool[:idx:idx], pool[idx+1:]...)
				added = true
			}
			if !added {
				break
			}
		}
		test = append(test, picked...)
	}

	rng.Shuffle(len(test), func(i, j int) {
		test[i], test[j] = test[j], test[i]
	})
	return test
}

// Answer is one submitted answer: the option index the candidate selected
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// CategoryScore is the per-category breakdown of a scored test
type CategoryScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is a scored aptitude test
type Result struct {
	Correct    int                      `json:"correct"`
	Total      int                      `json:"total"`
	Percent    int                      `json:"percent"`
	Band       string                   `json:"band"`
	Categories map[string]CategoryScore `json:"categories"`
	Wrong      []WrongAnswer            `json:"wrong,omitempty"`
}

// WrongAnswer explains one incorrect response
type WrongAnswer struct {
	QuestionID    string `json:"questionId"`
	Prompt        string `json:"prompt"`
	SelectedIndex int    `json:"selectedIndex"`
	CorrectIndex  int    `json:"correctIndex"`
	CorrectOption string `json:"correctOption"`
}

// Score grades submitted answers against the bank. Unknown question IDs are
// rejected; unanswered questions simply do not appear and count against
// nothing, so Total reflects the answers actually submitted.
func Score(answers []Answer) (Result, error) {
	if len(answers) == 0 {
		return Result{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"No answers submitted", nil)
	}

	result := Result{Categories: make(map[string]CategoryScore)}
	seen := make(map[string]bool)

	for _, answer := range answers {
		if seen[answer.QuestionID] {
			return Result{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("Duplicate answer for question %s", answer.QuestionID), nil)
		}
		seen[answer.QuestionID] = true

		question, ok := lookupQuestion(answer.QuestionID)
		if !ok {
			return Result{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("Unknown question ID %s", answer.QuestionID), nil)
		}

		result.Total++
		cs := result.Categories[question.Category]
		cs.Total++

		if answer.SelectedIndex == question.AnswerIndex {
			result.Correct++
			cs.Correct++
		} else {
			result.Wrong = append(result.Wrong, WrongAnswer{
				QuestionID:    question.ID,
				Prompt:        question.Prompt,
				SelectedIndex: answer.SelectedIndex,
				CorrectIndex:  question.AnswerIndex,
				CorrectOption: question.Options[question.AnswerIndex],
			})
		}
		result.Categories[question.Category] = cs
	}

	result.Percent = result.Correct * 100 / result.Total
	result.Band = percentileBand(result.Percent)

	sort.Slice(result.Wrong, func(i, j int) bool {
		return result.Wrong[i].QuestionID < result.Wrong[j].QuestionID
	})
	return result, nil
}

// percentileBand maps a percentage score onto a coarse band
func percentileBand(percent int) string {
	switch {
	case percent >= 85:
		return "excellent"
	case percent >= 70:
		return "above average"
	case percent >= 50:
		return "average"
	case percent >= 30:
		return "below average"
	default:
		return "needs practice"
	}
}
