package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// Provider chain defaults
	v.SetDefault("ai.providers.order", []string{"gemini", "openai"})
	v.SetDefault("ai.providers.gemini.enabled", true)
	v.SetDefault("ai.providers.gemini.apiKey", "")
	v.SetDefault("ai.providers.gemini.model", "")
	v.SetDefault("ai.providers.gemini.requestsPerMin", 15)
	v.SetDefault("ai.providers.gemini.burstCapacity", 3)
	v.SetDefault("ai.providers.gemini.dailyLimit", 1500)
	v.SetDefault("ai.providers.openai.enabled", false)
	v.SetDefault("ai.providers.openai.baseURL", "")
	v.SetDefault("ai.providers.openai.apiKey", "")
	v.SetDefault("ai.providers.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.providers.openai.requestsPerMin", 30)
	v.SetDefault("ai.providers.openai.burstCapacity", 5)
	v.SetDefault("ai.providers.openai.dailyLimit", 0)

	// AI Configuration - Interview operation defaults
	v.SetDefault("ai.interview.provider", "")
	v.SetDefault("ai.interview.model", "")
	v.SetDefault("ai.interview.timeout", 90*time.Second) // Question generation is the slowest operation
	v.SetDefault("ai.interview.apiKey", "")
	v.SetDefault("ai.interview.maxRetries", 2)
	v.SetDefault("ai.interview.temperature", 0.7)
	v.SetDefault("ai.interview.useSystemPrompts", true)

	// AI Configuration - Feedback operation defaults
	v.SetDefault("ai.feedback.provider", "")
	v.SetDefault("ai.feedback.model", "")
	v.SetDefault("ai.feedback.timeout", 60*time.Second)
	v.SetDefault("ai.feedback.apiKey", "")
	v.SetDefault("ai.feedback.maxRetries", 3)
	v.SetDefault("ai.feedback.temperature", 0.2) // Low temperature for consistent scoring
	v.SetDefault("ai.feedback.useSystemPrompts", true)

	// AI Configuration - Resume operation defaults
	v.SetDefault("ai.resume.provider", "")
	v.SetDefault("ai.resume.model", "")
	v.SetDefault("ai.resume.timeout", 75*time.Second)
	v.SetDefault("ai.resume.apiKey", "")
	v.SetDefault("ai.resume.maxRetries", 2)
	v.SetDefault("ai.resume.temperature", 0.1) // Very low temperature for factual analysis
	v.SetDefault("ai.resume.useSystemPrompts", true)

	// AI Configuration - Career operation defaults
	v.SetDefault("ai.career.provider", "")
	v.SetDefault("ai.career.model", "")
	v.SetDefault("ai.career.timeout", 75*time.Second)
	v.SetDefault("ai.career.apiKey", "")
	v.SetDefault("ai.career.maxRetries", 2)
	v.SetDefault("ai.career.temperature", 0.4)
	v.SetDefault("ai.career.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range []string{"interview", "feedback", "resume", "career"} {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Judge Configuration
	v.SetDefault("judge.baseURL", "https://judge0-ce.p.rapidapi.com")
	v.SetDefault("judge.apiKey", "")
	v.SetDefault("judge.timeout", 15*time.Second)
	v.SetDefault("judge.pollInterval", 500*time.Millisecond)
	v.SetDefault("judge.pollBackoff", 1.5)
	v.SetDefault("judge.maxPolls", 20)
	v.SetDefault("judge.maxConcurrency", 4)
	v.SetDefault("judge.workers", 2)
	v.SetDefault("judge.queueSize", 64)
	v.SetDefault("judge.storeTTL", 15*time.Minute)
	v.SetDefault("judge.circuitBreaker.enabled", true)
	v.SetDefault("judge.circuitBreaker.maxRequests", 3)
	v.SetDefault("judge.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("judge.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("judge.circuitBreaker.minRequests", 5)
	v.SetDefault("judge.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB
	v.SetDefault("app.promptReload", false)

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.openaiKey", "")
	v.SetDefault("vault.secrets.judgeKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "friede")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackFallbacks", true)
	v.SetDefault("observability.customMetrics.judge.enabled", true)
	v.SetDefault("observability.customMetrics.judge.trackDuration", true)
	v.SetDefault("observability.customMetrics.judge.trackVerdicts", true)
	v.SetDefault("observability.customMetrics.judge.trackQueueDepth", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackQuotas", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
