package judge

import (
	"sync"
	"time"

	"friede/internal/errors"

	"github.com/google/uuid"
)

// Submission lifecycle states
const (
	StateQueued   = "queued"
	StateRunning  = "running"
	StateFinished = "finished"
	StateFailed   = "failed"
)

// Submission is one async code-execution job tracked by the store
type Submission struct {
	ID         string     `json:"id"`
	State      string     `json:"state"`
	Language   string     `json:"language"`
	Source     string     `json:"-"` // never exposed in responses
	Stdin      string     `json:"-"`
	TestCases  []TestCase `json:"-"`
	Report     *RunReport `json:"report,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Store holds submissions in memory. Finished and failed submissions are
// evicted after the configured TTL.
type Store struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
	ttl         time.Duration
	stopChan    chan struct{}
	stopOnce    sync.Once

	now func() time.Time // injectable for tests
}

// NewStore creates a submission store and starts its eviction loop
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		submissions: make(map[string]*Submission),
		ttl:         ttl,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
	if ttl > 0 {
		go s.evictLoop()
	}
	return s
}

// Create registers a new queued submission and returns it
func (s *Store) Create(language, source, stdin string, cases []TestCase) *Submission {
	sub := &Submission{
		ID:        uuid.NewString(),
		State:     StateQueued,
		Language:  language,
		Source:    source,
		Stdin:     stdin,
		TestCases: cases,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.submissions[sub.ID] = sub
	s.mu.Unlock()
	return sub
}

// Get returns a copy of the submission with the given ID
func (s *Store) Get(id string) (Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return Submission{}, errors.NewValidationError(errors.ErrCodeSubmissionMissing,
			"No submission with ID "+id, nil)
	}
	return *sub, nil
}

// setState transitions a submission, recording the finish time on terminal
// states
func (s *Store) setState(id, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return
	}
	sub.State = state
	if state == StateFinished || state == StateFailed {
		t := s.now()
		sub.FinishedAt = &t
	}
}

// finish marks a submission finished with its run report
func (s *Store) finish(id string, report *RunReport) {
	s.mu.Lock()
	sub, ok := s.submissions[id]
	if ok {
		sub.Report = report
	}
	s.mu.Unlock()
	if ok {
		s.setState(id, StateFinished)
	}
}

// fail marks a submission failed with an error detail
func (s *Store) fail(id string, errMsg string) {
	s.mu.Lock()
	sub, ok := s.submissions[id]
	if ok {
		sub.Error = errMsg
	}
	s.mu.Unlock()
	if ok {
		s.setState(id, StateFailed)
	}
}

// Len reports the number of stored submissions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions)
}

// evictLoop removes terminal submissions older than the TTL
func (s *Store) evictLoop() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Store) evictExpired() {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.submissions {
		if sub.FinishedAt != nil && sub.FinishedAt.Before(cutoff) {
			delete(s.submissions, id)
		}
	}
}

// Close stops the eviction loop
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}
