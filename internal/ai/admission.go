package ai

import (
	"sync"
	"time"

	"friede/internal/config"

	"golang.org/x/time/rate"
)

// dailyQuota counts requests against a per-UTC-day limit. The counter
// resets when the UTC date changes.
type dailyQuota struct {
	mu    sync.Mutex
	limit int
	count int
	day   string // UTC date in YYYY-MM-DD form

	now func() time.Time // injectable for tests
}

func newDailyQuota(limit int) *dailyQuota {
	return &dailyQuota{
		limit: limit,
		now:   time.Now,
	}
}

// Take consumes one request from today's quota. It returns false when
// the daily limit is exhausted. A zero limit disables the quota.
func (q *dailyQuota) Take() bool {
	if q == nil || q.limit <= 0 {
		return true
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	today := q.now().UTC().Format("2006-01-02")
	if today != q.day {
		q.day = today
		q.count = 0
	}

	if q.count >= q.limit {
		return false
	}
	q.count++
	return true
}

// Remaining reports how many requests are left in today's quota. A
// negative value means the quota is unlimited.
func (q *dailyQuota) Remaining() int {
	if q == nil || q.limit <= 0 {
		return -1
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	today := q.now().UTC().Format("2006-01-02")
	if today != q.day {
		return q.limit
	}
	return q.limit - q.count
}

// admission gates requests to an upstream provider with a token bucket
// and a daily quota. Both checks are non-blocking: a request that
// cannot be admitted immediately falls through to the next provider.
type admission struct {
	limiter *rate.Limiter
	quota   *dailyQuota
}

// Allow reports whether one request may be sent to the provider right
// now. A denied token bucket does not consume daily quota.
func (a *admission) Allow() bool {
	if a == nil {
		return true
	}
	if a.limiter != nil && !a.limiter.Allow() {
		return false
	}
	return a.quota.Take()
}

// QuotaRemaining reports today's remaining quota, -1 when unlimited.
func (a *admission) QuotaRemaining() int {
	if a == nil {
		return -1
	}
	return a.quota.Remaining()
}

// Provider admission state is shared process-wide so that every
// operation service draws from the same bucket and quota.
var (
	admissionsMu sync.Mutex
	admissions   = make(map[string]*admission)
)

// getAdmission returns the shared admission gate for a named provider,
// creating it from the provider configuration on first use.
func getAdmission(name string, cfg config.ProviderConfig) *admission {
	admissionsMu.Lock()
	defer admissionsMu.Unlock()

	if a, ok := admissions[name]; ok {
		return a
	}

	a := &admission{}
	if cfg.RequestsPerMin > 0 {
		burst := cfg.BurstCapacity
		if burst <= 0 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), burst)
	}
	if cfg.DailyLimit > 0 {
		a.quota = newDailyQuota(cfg.DailyLimit)
	}

	admissions[name] = a
	return a
}

// resetAdmissions clears shared admission state. Only used by tests.
func resetAdmissions() {
	admissionsMu.Lock()
	defer admissionsMu.Unlock()
	admissions = make(map[string]*admission)
}
