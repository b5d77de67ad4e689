package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI
// model status and Judge0 reachability
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "friede",
		"version": s.Version,
	}

	// Check AI model availability for all operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check Judge0 status
	judgeStatus := s.checkJudgeHealth()
	response["judge"] = judgeStatus

	// Determine overall health status
	overallHealthy := true
	for _, opStatus := range aiStatus {
		infos, ok := opStatus.([]map[string]any)
		if !ok {
			overallHealthy = false
			break
		}
		// An operation is healthy when at least one provider in its chain
		// is available. The local fallback always is.
		opHealthy := false
		for _, info := range infos {
			if avail, ok := info["available"].(bool); ok && avail {
				opHealthy = true
				break
			}
		}
		if !opHealthy {
			overallHealthy = false
			break
		}
	}

	if healthy, ok := judgeStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	w.Header().Set("Content-Type", "application/json")
	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelsHealth checks every provider in each operation's chain
func (s *Server) checkAIModelsHealth() map[string]any {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	for operation, service := range s.aiServices {
		infos := service.GetModelInfo(ctx)
		entries := make([]map[string]any, 0, len(infos))
		for _, info := range infos {
			entry := map[string]any{
				"provider":  info.Provider,
				"name":      info.Name,
				"available": info.Available,
			}
			if info.Error != "" {
				entry["error"] = info.Error
			}
			entries = append(entries, entry)
		}
		aiStatus[operation] = entries
	}

	return aiStatus
}

// checkJudgeHealth checks Judge0 reachability and the circuit breaker state
func (s *Server) checkJudgeHealth() map[string]any {
	if s.JudgeService == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	judgeStatus := map[string]any{
		"enabled":         true,
		"healthy":         true,
		"queue_depth":     s.JudgeService.QueueDepth(),
		"circuit_breaker": s.JudgeService.GetCircuitBreakerStats(),
	}

	if !s.JudgeService.IsHealthy() {
		judgeStatus["healthy"] = false
		judgeStatus["message"] = "Circuit breaker is open"
		return judgeStatus
	}

	if err := s.JudgeService.Ping(ctx); err != nil {
		judgeStatus["healthy"] = false
		judgeStatus["error"] = fmt.Sprintf("Judge0 ping failed: %v", err)
	}

	return judgeStatus
}

// statsHandler provides server statistics including rate limiting info and
// per-provider quota status
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "friede",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	// Add remaining daily quota per operation and provider
	quotas := make(map[string]any)
	for operation, service := range s.aiServices {
		quotas[operation] = service.QuotaStatus()
	}
	response["provider_quotas"] = quotas

	if s.JudgeService != nil {
		response["judge"] = map[string]any{
			"queue_depth": s.JudgeService.QueueDepth(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
