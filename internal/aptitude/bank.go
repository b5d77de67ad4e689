// Package aptitude provides the built-in aptitude test: a static question
// bank across quantitative, logical, and verbal categories, deterministic
// seeded test assembly, and scoring with per-category breakdowns.
package aptitude

// Question categories
const (
	CategoryQuantitative = "quantitative"
	CategoryLogical      = "logical"
	CategoryVerbal       = "verbal"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one bank entry. AnswerIndex points into Options and is never
// serialized to clients.
type Question struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"-"`
}

// questionBank is the built-in catalog. IDs are stable so stored answers
// stay valid across releases.
var questionBank = []Question{
	// Quantitative
	{
		ID: "q-easy-1", Category: CategoryQuantitative, Difficulty: DifficultyEasy,
		Prompt:      "A train travels 120 km in 2 hours. What is its average speed?",
		Options:     []string{"40 km/h", "60 km/h", "80 km/h", "120 km/h"},
		AnswerIndex: 1,
	},
	{
		ID: "q-easy-2", Category: CategoryQuantitative, Difficulty: DifficultyEasy,
		Prompt:      "What is 15% of 200?",
		Options:     []string{"15", "20", "30", "45"},
		AnswerIndex: 2,
	},
	{
		ID: "q-med-1", Category: CategoryQuantitative, Difficulty: DifficultyMedium,
		Prompt:      "A price is increased by 20% and then decreased by 20%. The net change is:",
		Options:     []string{"No change", "4% decrease", "4% increase", "2% decrease"},
		AnswerIndex: 1,
	},
	{
		ID: "q-med-2", Category: CategoryQuantitative, Difficulty: DifficultyMedium,
		Prompt:      "If 6 workers finish a job in 12 days, how many days do 9 workers need at the same rate?",
		Options:     []string{"6", "8", "9", "10"},
		AnswerIndex: 1,
	},
	{
		ID: "q-hard-1", Category: CategoryQuantitative, Difficulty: DifficultyHard,
		Prompt:      "A sum doubles in 8 years at simple interest. In how many years does it triple?",
		Options:     []string{"12", "16", "20", "24"},
		AnswerIndex: 1,
	},
	{
		ID: "q-hard-2", Category: CategoryQuantitative, Difficulty: DifficultyHard,
		Prompt:      "Two dice are rolled. What is the probability the sum is exactly 9?",
		Options:     []string{"1/12", "1/9", "1/6", "1/8"},
		AnswerIndex: 1,
	},

	// Logical
	{
		ID: "l-easy-1", Category: CategoryLogical, Difficulty: DifficultyEasy,
		Prompt:      "Which number comes next: 2, 4, 8, 16, ...?",
		Options:     []string{"20", "24", "32", "64"},
		AnswerIndex: 2,
	},
	{
		ID: "l-easy-2", Category: CategoryLogical, Difficulty: DifficultyEasy,
		Prompt:      "All roses are flowers. Some flowers fade quickly. Which statement must be true?",
		Options:     []string{"All roses fade quickly", "Some roses fade quickly", "No roses fade quickly", "None of the above"},
		AnswerIndex: 3,
	},
	{
		ID: "l-med-1", Category: CategoryLogical, Difficulty: DifficultyMedium,
		Prompt:      "Which number comes next: 1, 1, 2, 3, 5, 8, ...?",
		Options:     []string{"11", "12", "13", "15"},
		AnswerIndex: 2,
	},
	{
		ID: "l-med-2", Category: CategoryLogical, Difficulty: DifficultyMedium,
		Prompt:      "A is taller than B. C is shorter than B. D is taller than A. Who is shortest?",
		Options:     []string{"A", "B", "C", "D"},
		AnswerIndex: 2,
	},
	{
		ID: "l-hard-1", Category: CategoryLogical, Difficulty: DifficultyHard,
		Prompt:      "In a certain code, PAPER is written as SDSHU. How is MOTHER written?",
		Options:     []string{"PRWKHU", "PRWKHT", "NPUIFS", "QSXLIV"},
		AnswerIndex: 0,
	},
	{
		ID: "l-hard-2", Category: CategoryLogical, Difficulty: DifficultyHard,
		Prompt:      "Five people sit in a row. K is to the immediate right of L. M sits at an end. N is between K and M. Who sits in the middle if O is at the other end?",
		Options:     []string{"K", "L", "N", "M"},
		AnswerIndex: 0,
	},

	// Verbal
	{
		ID: "v-easy-1", Category: CategoryVerbal, Difficulty: DifficultyEasy,
		Prompt:      "Choose the synonym of 'begin':",
		Options:     []string{"Conclude", "Commence", "Delay", "Cease"},
		AnswerIndex: 1,
	},
	{
		ID: "v-easy-2", Category: CategoryVerbal, Difficulty: DifficultyEasy,
		Prompt:      "Choose the antonym of 'scarce':",
		Options:     []string{"Rare", "Sparse", "Abundant", "Limited"},
		AnswerIndex: 2,
	},
	{
		ID: "v-med-1", Category: CategoryVerbal, Difficulty: DifficultyMedium,
		Prompt:      "Pick the word that best completes: 'The committee reached a unanimous ___ after hours of debate.'",
		Options:     []string{"dissent", "verdict", "quarrel", "premise"},
		AnswerIndex: 1,
	},
	{
		ID: "v-med-2", Category: CategoryVerbal, Difficulty: DifficultyMedium,
		Prompt:      "Ocean is to water as desert is to:",
		Options:     []string{"Cactus", "Heat", "Sand", "Camel"},
		AnswerIndex: 2,
	},
	{
		ID: "v-hard-1", Category: CategoryVerbal, Difficulty: DifficultyHard,
		Prompt:      "Choose the closest meaning of 'ephemeral':",
		Options:     []string{"Everlasting", "Short-lived", "Translucent", "Recurring"},
		AnswerIndex: 1,
	},
	{
		ID: "v-hard-2", Category: CategoryVerbal, Difficulty: DifficultyHard,
		Prompt:      "Choose the closest meaning of 'obfuscate':",
		Options:     []string{"Clarify", "Confuse", "Diminish", "Expose"},
		AnswerIndex: 1,
	},
}

// Categories lists the supported categories in presentation order
func Categories() []string {
	return []string{CategoryQuantitative, CategoryLogical, CategoryVerbal}
}

// BankSize reports the number of questions in the bank
func BankSize() int {
	return len(questionBank)
}

// lookupQuestion returns the bank entry with the given ID
func lookupQuestion(id string) (Question, bool) {
	for _, q := range questionBank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
