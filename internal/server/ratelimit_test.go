package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterManagerAllow(t *testing.T) {
	m := NewRateLimiter(60, time.Minute, 2, nil)
	defer m.Close()

	// Burst capacity of 2 allows two immediate requests
	if !m.Allow("client-a") {
		t.Error("Expected first request to be allowed")
	}
	if !m.Allow("client-a") {
		t.Error("Expected second request to be allowed")
	}
	if m.Allow("client-a") {
		t.Error("Expected third request to be rejected")
	}

	// A different key has its own bucket
	if !m.Allow("client-b") {
		t.Error("Expected request from a different key to be allowed")
	}
}

func TestLimiterManagerCleanup(t *testing.T) {
	m := NewRateLimiter(60, time.Minute, 1, nil)
	defer m.Close()

	m.Allow("stale")
	m.mu.Lock()
	m.lastSeen["stale"] = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	m.cleanup(10 * time.Minute)

	m.mu.Lock()
	_, exists := m.limiters["stale"]
	m.mu.Unlock()
	if exists {
		t.Error("Expected stale limiter to be evicted")
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		header   map[string]string
		byAPIKey bool
		byIP     bool
		expected string
	}{
		{
			name:     "api key header",
			header:   map[string]string{"X-API-Key": "secret123"},
			byAPIKey: true,
			expected: "api:secret123",
		},
		{
			name:     "bearer token fallback",
			header:   map[string]string{"Authorization": "Bearer tok456"},
			byAPIKey: true,
			expected: "api:tok456",
		},
		{
			name:     "falls back to ip when no key",
			byAPIKey: true,
			byIP:     true,
			expected: "ip:192.0.2.1",
		},
		{
			name:     "no strategy enabled",
			header:   map[string]string{"X-API-Key": "secret123"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/interview/questions", nil)
			r.RemoteAddr = "192.0.2.1:54321"
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			key := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if key != tt.expected {
				t.Errorf("Expected key %q, got %q", tt.expected, key)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		header     map[string]string
		expected   string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:1234",
			expected:   "203.0.113.7",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "203.0.113.7:1234",
			header:     map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"},
			expected:   "198.51.100.2",
		},
		{
			name:       "invalid forwarded entries skipped",
			remoteAddr: "203.0.113.7:1234",
			header:     map[string]string{"X-Forwarded-For": "not-an-ip, 198.51.100.9"},
			expected:   "198.51.100.9",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "203.0.113.7:1234",
			header:     map[string]string{"X-Real-IP": "198.51.100.3"},
			expected:   "198.51.100.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			if ip := getClientIP(r); ip != tt.expected {
				t.Errorf("Expected IP %q, got %q", tt.expected, ip)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"short key fully masked", "abc", "****"},
		{"eight chars fully masked", "12345678", "****"},
		{"long key shows prefix", "sk-abcdef123456", "sk-abcde****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.key); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
