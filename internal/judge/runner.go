package judge

import (
	"context"
	"sync"

	"friede/internal/errors"

	"golang.org/x/sync/errgroup"
)

// executor abstracts the Judge0 client for the runner so tests can substitute
// a fake
type executor interface {
	Execute(ctx context.Context, lang Language, source, stdin, expectedOutput string) (*SubmissionResult, error)
}

// TestCase is one input/expected-output pair a submission runs against
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// CaseResult is the outcome of one test case
type CaseResult struct {
	Index   int    `json:"index"`
	Passed  bool   `json:"passed"`
	Verdict string `json:"verdict"`
	Stdout  string `json:"stdout,omitempty"`
	Stderr  string `json:"stderr,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RunReport aggregates a full test-case run
type RunReport struct {
	Passed      int          `json:"passed"`
	Total       int          `json:"total"`
	Score       float64      `json:"score"` // passed/total in [0,1]
	Verdict     string       `json:"verdict"`
	FirstFailed *CaseResult  `json:"firstFailed,omitempty"`
	Cases       []CaseResult `json:"cases"`
}

// Runner executes one submission against many test cases with bounded
// concurrency
type Runner struct {
	client         executor
	maxConcurrency int
	logger         *errors.Logger
}

// NewRunner creates a test-case runner over a Judge0 client
func NewRunner(client executor, maxConcurrency int, logger *errors.Logger) *Runner {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Runner{client: client, maxConcurrency: maxConcurrency, logger: logger}
}

// Run executes source against every test case. Individual case failures,
// including Judge0 errors, are recorded per case; the run itself only fails
// when the context is cancelled. With no test cases the source is executed
// once with empty stdin.
func (r *Runner) Run(ctx context.Context, lang Language, source string, cases []TestCase) (*RunReport, error) {
	if len(cases) == 0 {
		cases = []TestCase{{}}
	}

	report := &RunReport{
		Total: len(cases),
		Cases: make([]CaseResult, len(cases)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)

	for i, tc := range cases {
		g.Go(func() error {
			caseResult := CaseResult{Index: i}

			result, err := r.client.Execute(gctx, lang, source, tc.Input, tc.ExpectedOutput)
			switch {
			case err != nil && result != nil && result.Verdict == VerdictProcessingTimeout:
				caseResult.Verdict = VerdictProcessingTimeout
				caseResult.Error = err.Error()
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				caseResult.Verdict = VerdictInternalError
				caseResult.Error = err.Error()
			default:
				caseResult.Verdict = result.Verdict
				caseResult.Stdout = result.Stdout
				caseResult.Stderr = result.Stderr
				caseResult.Passed = result.Verdict == VerdictAccepted
			}

			mu.Lock()
			report.Cases[i] = caseResult
			if caseResult.Passed {
				report.Passed++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Score = float64(report.Passed) / float64(report.Total)
	report.Verdict = VerdictAccepted
	for i := range report.Cases {
		if !report.Cases[i].Passed {
			report.Verdict = report.Cases[i].Verdict
			failed := report.Cases[i]
			report.FirstFailed = &failed
			break
		}
	}
	return report, nil
}
