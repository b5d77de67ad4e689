package ai

import (
	"testing"
	"time"

	"friede/internal/config"
)

func TestDailyQuotaExhaustionAndReset(t *testing.T) {
	current := time.Date(2026, 3, 10, 23, 58, 0, 0, time.UTC)
	quota := newDailyQuota(2)
	quota.now = func() time.Time { return current }

	if !quota.Take() || !quota.Take() {
		t.Fatal("Expected the first two takes to succeed")
	}
	if quota.Take() {
		t.Error("Expected the third take to fail with limit 2")
	}
	if remaining := quota.Remaining(); remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}

	// Crossing UTC midnight resets the counter
	current = time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)
	if remaining := quota.Remaining(); remaining != 2 {
		t.Errorf("Expected full quota after the date change, got %d", remaining)
	}
	if !quota.Take() {
		t.Error("Expected take to succeed after the date change")
	}
}

func TestDailyQuotaUnlimited(t *testing.T) {
	quota := newDailyQuota(0)
	for i := 0; i < 100; i++ {
		if !quota.Take() {
			t.Fatal("Unlimited quota should never deny")
		}
	}
	if remaining := quota.Remaining(); remaining != -1 {
		t.Errorf("Expected -1 for unlimited quota, got %d", remaining)
	}
}

func TestAdmissionTokenBucket(t *testing.T) {
	resetAdmissions()
	t.Cleanup(resetAdmissions)

	gate := getAdmission("gemini", config.ProviderConfig{
		RequestsPerMin: 60,
		BurstCapacity:  2,
		DailyLimit:     100,
	})

	// Burst capacity admits two immediately, the third is denied
	if !gate.Allow() || !gate.Allow() {
		t.Fatal("Expected the burst to admit two requests")
	}
	if gate.Allow() {
		t.Error("Expected the bucket to deny once the burst is spent")
	}

	// The denied request must not have consumed daily quota
	if remaining := gate.QuotaRemaining(); remaining != 98 {
		t.Errorf("Expected 98 quota remaining, got %d", remaining)
	}
}

func TestAdmissionSharedAcrossLookups(t *testing.T) {
	resetAdmissions()
	t.Cleanup(resetAdmissions)

	cfg := config.ProviderConfig{RequestsPerMin: 60, BurstCapacity: 1, DailyLimit: 10}
	first := getAdmission("openai", cfg)
	second := getAdmission("openai", cfg)

	if first != second {
		t.Fatal("Expected the same admission gate for the same provider name")
	}

	// Spending the burst through one handle is visible through the other
	if !first.Allow() {
		t.Fatal("Expected the first request to be admitted")
	}
	if second.Allow() {
		t.Error("Expected the shared bucket to deny the second request")
	}
}

func TestAdmissionNilGateAlwaysAllows(t *testing.T) {
	var gate *admission
	if !gate.Allow() {
		t.Error("Nil admission gate should always allow")
	}
	if gate.QuotaRemaining() != -1 {
		t.Error("Nil admission gate should report unlimited quota")
	}
}
