package judge

import (
	"context"
	"sync"

	"friede/internal/config"
	"friede/internal/errors"
)

// Service is the async submission pipeline: submissions enter a bounded
// queue, a worker pool executes them against Judge0, and results are
// retrievable from the store by ID until the TTL evicts them.
type Service struct {
	client *Client
	runner *Runner
	store  *Store
	queue  chan string
	logger *errors.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewService creates the submission service and starts its workers
func NewService(cfg *config.JudgeConfig, logger *errors.Logger) (*Service, error) {
	client, err := NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		client: client,
		runner: NewRunner(client, cfg.MaxConcurrency, logger),
		store:  NewStore(cfg.StoreTTL),
		queue:  make(chan string, queueSize),
		logger: logger,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	logger.Info("Judge service started",
		"workers", workers,
		"queue_size", queueSize,
		"max_concurrency", cfg.MaxConcurrency)
	return s, nil
}

// Submit validates the language, enqueues a submission, and returns it in
// the queued state. A full queue is reported to the caller instead of
// blocking the request.
func (s *Service) Submit(language, source, stdin string, cases []TestCase) (Submission, error) {
	if _, err := ResolveLanguage(language); err != nil {
		return Submission{}, err
	}
	if source == "" {
		return Submission{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Source code is required", nil)
	}

	sub := s.store.Create(language, source, stdin, cases)

	select {
	case s.queue <- sub.ID:
	default:
		s.store.fail(sub.ID, "submission queue is full")
		return Submission{}, errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Submission queue is full, try again later", nil)
	}

	s.logger.Debug("Submission queued",
		"submission_id", sub.ID,
		"language", language,
		"test_cases", len(cases))
	return *sub, nil
}

// Get returns the current state of a submission by ID
func (s *Service) Get(id string) (Submission, error) {
	return s.store.Get(id)
}

// QueueDepth reports how many submissions are waiting for a worker
func (s *Service) QueueDepth() int {
	return len(s.queue)
}

// Ping reports Judge0 reachability
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// IsHealthy reports whether the Judge0 circuit breaker is closed
func (s *Service) IsHealthy() bool {
	return s.client.IsHealthy()
}

// GetCircuitBreakerStats returns the Judge0 circuit breaker statistics
func (s *Service) GetCircuitBreakerStats() map[string]any {
	return s.client.GetCircuitBreakerStats()
}

// worker consumes the queue until the service shuts down
func (s *Service) worker(ctx context.Context, id int) {
	defer s.wg.Done()
	s.logger.Debug("Judge worker started", "worker", id)

	for {
		select {
		case <-ctx.Done():
			return
		case subID := <-s.queue:
			s.process(ctx, subID)
		}
	}
}

// process runs one queued submission to completion
func (s *Service) process(ctx context.Context, subID string) {
	sub, err := s.store.Get(subID)
	if err != nil {
		return
	}

	lang, err := ResolveLanguage(sub.Language)
	if err != nil {
		s.store.fail(subID, err.Error())
		return
	}

	s.store.setState(subID, StateRunning)

	var report *RunReport
	if len(sub.TestCases) > 0 {
		report, err = s.runner.Run(ctx, lang, sub.Source, sub.TestCases)
	} else {
		var result *SubmissionResult
		result, err = s.client.Execute(ctx, lang, sub.Source, sub.Stdin, "")
		if result != nil {
			report = singleRunReport(result)
		}
	}

	switch {
	case err != nil && report != nil:
		// Poll timeout still carries a usable verdict
		s.store.finish(subID, report)
	case err != nil:
		s.logger.Warn("Submission failed",
			"submission_id", subID,
			"error", err)
		s.store.fail(subID, err.Error())
	default:
		s.store.finish(subID, report)
	}
}

// singleRunReport wraps a single execution without test cases as a report
func singleRunReport(result *SubmissionResult) *RunReport {
	passed := 0
	if result.Verdict == VerdictAccepted {
		passed = 1
	}
	return &RunReport{
		Passed:  passed,
		Total:   1,
		Score:   float64(passed),
		Verdict: result.Verdict,
		Cases: []CaseResult{{
			Index:   0,
			Passed:  passed == 1,
			Verdict: result.Verdict,
			Stdout:  result.Stdout,
			Stderr:  result.Stderr,
			Error:   result.Message,
		}},
	}
}

// Close stops the workers and the store eviction loop
func (s *Service) Close() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.store.Close()
	})
}
