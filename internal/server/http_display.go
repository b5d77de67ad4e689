package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                - Health check")
	fmt.Println("  GET  /stats                 - Server statistics")
	fmt.Println("  POST /interview/questions   - Generate mock interview (requires API key)")
	fmt.Println("  POST /interview/feedback    - Score an interview answer (requires API key)")
	fmt.Println("  POST /resume/analyze        - Analyze resume (requires API key)")
	fmt.Println("  POST /career/pathway        - Plan career pathway (requires API key)")
	fmt.Println("  POST /resume/ats            - ATS compatibility score (requires API key)")
	fmt.Println("  POST /analysis/aidetect     - AI-generated text check (requires API key)")
	fmt.Println("  POST /analysis/performance  - Code performance heuristics (requires API key)")
	fmt.Println("  GET  /aptitude/test         - Assemble aptitude test (requires API key)")
	fmt.Println("  POST /aptitude/score        - Score aptitude answers (requires API key)")
	fmt.Println("  POST /judge/submissions     - Submit code for judging (requires API key)")
	fmt.Println("  GET  /judge/submissions/:id - Fetch judge submission (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
