package judge

import (
	"testing"
	"time"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(0)
	defer store.Close()

	sub := store.Create("python", "print(1)", "", nil)
	if sub.ID == "" {
		t.Fatal("Expected a submission ID")
	}
	if sub.State != StateQueued {
		t.Errorf("Expected initial state queued, got %q", sub.State)
	}

	store.setState(sub.ID, StateRunning)
	got, err := store.Get(sub.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.State != StateRunning {
		t.Errorf("Expected state running, got %q", got.State)
	}
	if got.FinishedAt != nil {
		t.Error("Running submission must not have a finish time")
	}

	report := &RunReport{Passed: 1, Total: 1, Score: 1, Verdict: VerdictAccepted}
	store.finish(sub.ID, report)

	got, _ = store.Get(sub.ID)
	if got.State != StateFinished {
		t.Errorf("Expected state finished, got %q", got.State)
	}
	if got.Report == nil || got.Report.Verdict != VerdictAccepted {
		t.Errorf("Expected the run report to be stored, got %+v", got.Report)
	}
	if got.FinishedAt == nil {
		t.Error("Finished submission must have a finish time")
	}
}

func TestStoreFailure(t *testing.T) {
	store := NewStore(0)
	defer store.Close()

	sub := store.Create("python", "print(1)", "", nil)
	store.fail(sub.ID, "judge unreachable")

	got, _ := store.Get(sub.ID)
	if got.State != StateFailed {
		t.Errorf("Expected state failed, got %q", got.State)
	}
	if got.Error != "judge unreachable" {
		t.Errorf("Expected error detail, got %q", got.Error)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore(0)
	defer store.Close()

	if _, err := store.Get("no-such-id"); err == nil {
		t.Fatal("Expected an error for an unknown submission ID")
	}
}

func TestStoreEviction(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	finished := store.Create("python", "print(1)", "", nil)
	store.finish(finished.ID, &RunReport{Verdict: VerdictAccepted})
	pending := store.Create("python", "print(2)", "", nil)

	// Within the TTL nothing is evicted
	current = current.Add(30 * time.Second)
	store.evictExpired()
	if store.Len() != 2 {
		t.Fatalf("Expected 2 submissions before the TTL, got %d", store.Len())
	}

	// Past the TTL only the terminal submission goes
	current = current.Add(2 * time.Minute)
	store.evictExpired()
	if store.Len() != 1 {
		t.Fatalf("Expected 1 submission after eviction, got %d", store.Len())
	}
	if _, err := store.Get(pending.ID); err != nil {
		t.Error("Queued submission must survive eviction")
	}
	if _, err := store.Get(finished.ID); err == nil {
		t.Error("Finished submission past the TTL must be evicted")
	}
}
