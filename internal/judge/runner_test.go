package judge

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"friede/internal/errors"
)

// fakeExecutor returns canned results keyed by stdin
type fakeExecutor struct {
	mu         sync.Mutex
	results    map[string]*SubmissionResult
	errs       map[string]error
	inFlight   int32
	maxSeen    int32
	callDelays chan struct{}
}

func (f *fakeExecutor) Execute(_ context.Context, _ Language, _ string, stdin, _ string) (*SubmissionResult, error) {
	current := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		max := atomic.LoadInt32(&f.maxSeen)
		if current <= max || atomic.CompareAndSwapInt32(&f.maxSeen, max, current) {
			break
		}
	}
	if f.callDelays != nil {
		<-f.callDelays
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[stdin]; ok {
		return nil, err
	}
	if result, ok := f.results[stdin]; ok {
		return result, nil
	}
	return &SubmissionResult{StatusID: statusAccepted, Verdict: VerdictAccepted}, nil
}

func testLang() Language {
	lang, _ := ResolveLanguage("python")
	return lang
}

func TestRunnerAllPass(t *testing.T) {
	runner := NewRunner(&fakeExecutor{}, 2, errors.NewLogger(slog.LevelError))
	cases := []TestCase{{Input: "1"}, {Input: "2"}, {Input: "3"}}

	report, err := runner.Run(context.Background(), testLang(), "src", cases)
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if report.Passed != 3 || report.Total != 3 {
		t.Errorf("Expected 3/3 passed, got %d/%d", report.Passed, report.Total)
	}
	if report.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %f", report.Score)
	}
	if report.Verdict != VerdictAccepted {
		t.Errorf("Expected Accepted, got %q", report.Verdict)
	}
	if report.FirstFailed != nil {
		t.Error("Expected no failing case")
	}
}

func TestRunnerFirstFailureReported(t *testing.T) {
	exec := &fakeExecutor{
		results: map[string]*SubmissionResult{
			"2": {StatusID: statusWrongAnswer, Verdict: VerdictWrongAnswer, Stdout: "wrong"},
		},
	}
	runner := NewRunner(exec, 1, errors.NewLogger(slog.LevelError))
	cases := []TestCase{{Input: "1"}, {Input: "2"}, {Input: "3"}}

	report, err := runner.Run(context.Background(), testLang(), "src", cases)
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if report.Passed != 2 {
		t.Errorf("Expected 2 passed, got %d", report.Passed)
	}
	if report.Verdict != VerdictWrongAnswer {
		t.Errorf("Expected Wrong Answer overall, got %q", report.Verdict)
	}
	if report.FirstFailed == nil || report.FirstFailed.Index != 1 {
		t.Errorf("Expected first failure at index 1, got %+v", report.FirstFailed)
	}
	if report.Score <= 0.6 || report.Score >= 0.7 {
		t.Errorf("Expected score 2/3, got %f", report.Score)
	}
}

func TestRunnerCaseErrorDoesNotAbortRun(t *testing.T) {
	exec := &fakeExecutor{
		errs: map[string]error{
			"2": errors.NewJudgeError(errors.ErrCodeJudgeUnavailable, "down", nil),
		},
	}
	runner := NewRunner(exec, 2, errors.NewLogger(slog.LevelError))
	cases := []TestCase{{Input: "1"}, {Input: "2"}}

	report, err := runner.Run(context.Background(), testLang(), "src", cases)
	if err != nil {
		t.Fatalf("Expected the run to survive a case error, got: %v", err)
	}
	if report.Passed != 1 {
		t.Errorf("Expected 1 passed, got %d", report.Passed)
	}
	failed := report.Cases[1]
	if failed.Verdict != VerdictInternalError || failed.Error == "" {
		t.Errorf("Expected the failing case to carry error detail, got %+v", failed)
	}
}

func TestRunnerBoundedConcurrency(t *testing.T) {
	exec := &fakeExecutor{callDelays: make(chan struct{})}
	runner := NewRunner(exec, 2, errors.NewLogger(slog.LevelError))
	cases := make([]TestCase, 6)
	for i := range cases {
		cases[i] = TestCase{Input: string(rune('a' + i))}
	}

	done := make(chan *RunReport, 1)
	go func() {
		report, _ := runner.Run(context.Background(), testLang(), "src", cases)
		done <- report
	}()

	for i := 0; i < len(cases); i++ {
		exec.callDelays <- struct{}{}
	}
	report := <-done

	if report == nil {
		t.Fatal("Expected a report")
	}
	if seen := atomic.LoadInt32(&exec.maxSeen); seen > 2 {
		t.Errorf("Expected at most 2 concurrent executions, saw %d", seen)
	}
	if report.Total != 6 || report.Passed != 6 {
		t.Errorf("Expected 6/6 passed, got %d/%d", report.Passed, report.Total)
	}
}

func TestRunnerNoTestCasesRunsOnce(t *testing.T) {
	runner := NewRunner(&fakeExecutor{}, 2, errors.NewLogger(slog.LevelError))
	report, err := runner.Run(context.Background(), testLang(), "src", nil)
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if report.Total != 1 {
		t.Errorf("Expected a single implicit case, got %d", report.Total)
	}
}
