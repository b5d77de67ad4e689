package analysis

import (
	"math"
	"regexp"
	"strings"
)

// AIDetectionReport is the result of scanning text for AI-generation signals
type AIDetectionReport struct {
	Score   int        `json:"score"`   // 0-100 likelihood the text is AI-generated
	Verdict string     `json:"verdict"` // "likely human", "uncertain", "likely ai"
	Signals []AISignal `json:"signals"`
}

// AISignal is one weighted detection signal and whether it fired
type AISignal struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Fired  bool   `json:"fired"`
	Detail string `json:"detail,omitempty"`
}

// stockPhrases are formulaic openers and fillers characteristic of LLM output
var stockPhrases = []string{
	"as an ai language model",
	"it's important to note",
	"it is important to note",
	"it's worth noting",
	"in today's fast-paced world",
	"in conclusion",
	"delve into",
	"a multifaceted",
	"plays a crucial role",
	"plays a vital role",
	"in the realm of",
	"it is essential to",
	"furthermore, it",
	"a testament to",
	"navigating the complexities",
	"ever-evolving landscape",
}

// hedgingPhrases soften claims without adding information
var hedgingPhrases = []string{
	"generally speaking",
	"it could be argued",
	"in many cases",
	"to some extent",
	"one might consider",
	"there are various",
	"a number of factors",
}

var transitionWords = []string{
	"furthermore", "moreover", "additionally", "consequently",
	"nevertheless", "subsequently", "accordingly", "ultimately",
}

var contractionPattern = regexp.MustCompile(`(?i)\b\w+'(s|t|re|ve|ll|d|m)\b`)

var listItemPattern = regexp.MustCompile(`(?m)^\s*([-*•]|\d+[.)])\s`)

var sentenceSplit = regexp.MustCompile(`[.!?]+\s+`)

// sentenceLengthVariance returns the coefficient of variation of sentence
// word counts. Human writing tends to vary; LLM output is uniform.
func sentenceLengthVariance(text string) float64 {
	sentences := sentenceSplit.Split(text, -1)
	var lengths []float64
	for _, s := range sentences {
		if n := len(strings.Fields(s)); n > 2 {
			lengths = append(lengths, float64(n))
		}
	}
	if len(lengths) < 3 {
		return 1.0 // too little text to judge, treat as varied
	}
	var sum float64
	for _, l := range lengths {
		sum += l
	}
	mean := sum / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))
	if mean == 0 {
		return 1.0
	}
	return math.Sqrt(variance) / mean
}

func countContains(lower string, phrases []string) (int, string) {
	count := 0
	first := ""
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			count++
			if first == "" {
				first = p
			}
		}
	}
	return count, first
}

// DetectAI scores the likelihood that text was AI-generated. The result is a
// fixed-weight sum over independent signals, clamped to 0-100. Texts under
// 30 words score 0 with verdict "uncertain" since no signal is meaningful at
// that length.
func DetectAI(text string) AIDetectionReport {
	report := AIDetectionReport{}
	words := strings.Fields(text)
	if len(words) < 30 {
		report.Verdict = "uncertain"
		report.Signals = append(report.Signals, AISignal{
			Name: "length", Weight: 0, Fired: false,
			Detail: "Text too short for reliable detection",
		})
		return report
	}

	lower := strings.ToLower(text)

	// Stock AI phrases, 12 points each up to 36
	stockCount, firstStock := countContains(lower, stockPhrases)
	stockPoints := stockCount * 12
	if stockPoints > 36 {
		stockPoints = 36
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "stock_phrases", Weight: stockPoints, Fired: stockCount > 0,
		Detail: firstStock,
	})

	// Hedging boilerplate, 6 points each up to 18
	hedgeCount, firstHedge := countContains(lower, hedgingPhrases)
	hedgePoints := hedgeCount * 6
	if hedgePoints > 18 {
		hedgePoints = 18
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "hedging", Weight: hedgePoints, Fired: hedgeCount > 0,
		Detail: firstHedge,
	})

	// Uniform sentence length: coefficient of variation under 0.25
	cv := sentenceLengthVariance(text)
	uniform := cv < 0.25
	uniformPoints := 0
	if uniform {
		uniformPoints = 16
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "uniform_sentences", Weight: uniformPoints, Fired: uniform,
	})

	// Low contraction rate: humans contract, formal LLM output rarely does.
	// Under 1 contraction per 100 words fires the signal.
	contractions := len(contractionPattern.FindAllString(text, -1))
	rate := float64(contractions) / float64(len(words)) * 100
	lowContractions := rate < 1.0
	contractionPoints := 0
	if lowContractions {
		contractionPoints = 12
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "low_contractions", Weight: contractionPoints, Fired: lowContractions,
	})

	// List-heavy structure: three or more bullet/numbered lines
	listItems := len(listItemPattern.FindAllString(text, -1))
	listHeavy := listItems >= 3
	listPoints := 0
	if listHeavy {
		listPoints = 8
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "list_structure", Weight: listPoints, Fired: listHeavy,
	})

	// Transition word density: over 1.5 per 100 words
	transitions, _ := countOccurrences(lower, transitionWords)
	transitionRate := float64(transitions) / float64(len(words)) * 100
	transitionHeavy := transitionRate > 1.5
	transitionPoints := 0
	if transitionHeavy {
		transitionPoints = 10
	}
	report.Signals = append(report.Signals, AISignal{
		Name: "transition_words", Weight: transitionPoints, Fired: transitionHeavy,
	})

	score := stockPoints + hedgePoints + uniformPoints + contractionPoints + listPoints + transitionPoints
	if score > 100 {
		score = 100
	}
	report.Score = score

	switch {
	case score >= 65:
		report.Verdict = "likely ai"
	case score >= 35:
		report.Verdict = "uncertain"
	default:
		report.Verdict = "likely human"
	}
	return report
}

// countOccurrences counts every occurrence of each word, not just presence
func countOccurrences(lower string, terms []string) (int, string) {
	total := 0
	first := ""
	for _, term := range terms {
		n := strings.Count(lower, term)
		if n > 0 && first == "" {
			first = term
		}
		total += n
	}
	return total, first
}
