package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"friede/internal/config"
	frErrors "friede/internal/errors"
	"friede/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *frErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *frErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, frErrors.NewAIError(frErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// Name implements Provider
func (g *GeminiProvider) Name() string { return "gemini" }

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Provider:  "gemini",
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", "gemini",
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", "gemini",
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	return false
}

// retryableStatus reports whether an HTTP status code is worth retrying
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("friede.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIResponseParse, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// GenerateInterview implements Provider for mock interview generation
func (g *GeminiProvider) GenerateInterview(ctx context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("interview")
	userPrompt := fmt.Sprintf(g.getUserPrompt("interview"),
		input.Role, input.Difficulty, strings.Join(input.Focus, ", "), input.Count, input.Resume)

	output, tokenUsage, err := executeAIOperation[types.InterviewOutput](
		g,
		ctx,
		"generate_interview",
		userPrompt,
		systemPrompt,
		g.buildInterviewSchema(),
		attribute.String("input.role", input.Role),
		attribute.String("input.difficulty", input.Difficulty),
		attribute.Int("input.question_count", input.Count),
	)

	if err != nil {
		return types.InterviewOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.question_count", len(output.Questions)))
	}

	output.Role = input.Role
	output.Provider = "gemini"
	return output, tokenUsage, nil
}

// ScoreAnswer implements Provider for interview answer assessment
func (g *GeminiProvider) ScoreAnswer(ctx context.Context, input types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("feedback")
	userPrompt := fmt.Sprintf(g.getUserPrompt("feedback"),
		input.Role, input.Question, input.Answer)

	output, tokenUsage, err := executeAIOperation[types.FeedbackOutput](
		g,
		ctx,
		"score_answer",
		userPrompt,
		systemPrompt,
		g.buildFeedbackSchema(),
		attribute.Int("input.answer_length", len(input.Answer)),
	)

	if err != nil {
		return types.FeedbackOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("feedback.score", output.Score))
	}

	output.Provider = "gemini"
	return output, tokenUsage, nil
}

// AnalyzeResume implements Provider for resume analysis
func (g *GeminiProvider) AnalyzeResume(ctx context.Context, input types.ResumeInput) (types.ResumeOutput, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("resume")
	userPrompt := fmt.Sprintf(g.getUserPrompt("resume"),
		input.TargetRole, input.JobDescription, input.Resume)

	output, tokenUsage, err := executeAIOperation[types.ResumeOutput](
		g,
		ctx,
		"analyze_resume",
		userPrompt,
		systemPrompt,
		g.buildResumeSchema(),
		attribute.Int("input.resume_length", len(input.Resume)),
		attribute.String("input.target_role", input.TargetRole),
	)

	if err != nil {
		return types.ResumeOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.skills_count", len(output.Skills)))
	}

	output.Provider = "gemini"
	return output, tokenUsage, nil
}

// PlanCareer implements Provider for career pathway planning
func (g *GeminiProvider) PlanCareer(ctx context.Context, input types.CareerInput) (types.CareerOutput, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("career")
	userPrompt := fmt.Sprintf(g.getUserPrompt("career"),
		input.TargetRole, strings.Join(input.CurrentSkills, ", "), input.ExperienceYears)

	output, tokenUsage, err := executeAIOperation[types.CareerOutput](
		g,
		ctx,
		"plan_career",
		userPrompt,
		systemPrompt,
		g.buildCareerSchema(),
		attribute.String("input.target_role", input.TargetRole),
		attribute.Int("input.skills_count", len(input.CurrentSkills)),
	)

	if err != nil {
		return types.CareerOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("career.readiness", output.Readiness),
			attribute.Int("career.milestones", len(output.Milestones)),
		)
	}

	output.TargetRole = input.TargetRole
	output.Provider = "gemini"
	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy()

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// applyTemperature applies temperature configuration if set
func (g *GeminiProvider) applyTemperature(cfg *genai.GenerateContentConfig) *genai.GenerateContentConfig {
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

// buildInterviewSchema creates the schema for interview generation requests
func (g *GeminiProvider) buildInterviewSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"opening": {Type: genai.TypeString},
				"questions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"category": {Type: genai.TypeString},
							"question": {Type: genai.TypeString},
							"whyAsked": {Type: genai.TypeString},
							"hints": {
								Type:  genai.TypeArray,
								Items: &genai.Schema{Type: genai.TypeString},
							},
						},
						Required: []string{"category", "question", "whyAsked", "hints"},
					},
				},
			},
			Required: []string{"opening", "questions"},
		},
	})
}

// buildFeedbackSchema creates the schema for answer scoring requests
func (g *GeminiProvider) buildFeedbackSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":   {Type: genai.TypeInteger},
				"verdict": {Type: genai.TypeString},
				"strengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"improvements": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"modelAnswer": {Type: genai.TypeString},
			},
			Required: []string{"score", "verdict", "strengths", "improvements", "modelAnswer"},
		},
	})
}

// buildResumeSchema creates the schema for resume analysis requests
func (g *GeminiProvider) buildResumeSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary": {Type: genai.TypeString},
				"skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"strengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"gaps": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"roleFit": {Type: genai.TypeString},
			},
			Required: []string{"summary", "skills", "strengths", "gaps", "roleFit"},
		},
	})
}

// buildCareerSchema creates the schema for career planning requests
func (g *GeminiProvider) buildCareerSchema() *genai.GenerateContentConfig {
	return g.applyTemperature(&genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"readiness": {Type: genai.TypeInteger},
				"matchedSkills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"missingSkills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"milestones": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":         {Type: genai.TypeString},
							"description":   {Type: genai.TypeString},
							"durationWeeks": {Type: genai.TypeInteger},
						},
						Required: []string{"title", "description", "durationWeeks"},
					},
				},
				"courses": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"skill":    {Type: genai.TypeString},
							"title":    {Type: genai.TypeString},
							"platform": {Type: genai.TypeString},
						},
						Required: []string{"skill", "title", "platform"},
					},
				},
			},
			Required: []string{"readiness", "matchedSkills", "missingSkills", "milestones", "courses"},
		},
	})
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getSystemPrompt returns the appropriate system prompt for the operation,
// prioritizing file-loaded content over config over the built-in defaults
func (g *GeminiProvider) getSystemPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	configPrompts := g.config.CustomPrompts.SystemPrompts

	switch operationType {
	case "interview":
		return resolvePrompt(loaded.SystemPrompts.GenerateInterview, configPrompts.GenerateInterview, DefaultSystemPrompts.GenerateInterview)
	case "feedback":
		return resolvePrompt(loaded.SystemPrompts.ScoreAnswer, configPrompts.ScoreAnswer, DefaultSystemPrompts.ScoreAnswer)
	case "resume":
		return resolvePrompt(loaded.SystemPrompts.AnalyzeResume, configPrompts.AnalyzeResume, DefaultSystemPrompts.AnalyzeResume)
	case "career":
		return resolvePrompt(loaded.SystemPrompts.PlanCareer, configPrompts.PlanCareer, DefaultSystemPrompts.PlanCareer)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	configPrompts := g.config.CustomPrompts.UserPrompts

	switch operationType {
	case "interview":
		return resolvePrompt(loaded.UserPrompts.GenerateInterview, configPrompts.GenerateInterview, DefaultUserPrompts.GenerateInterview)
	case "feedback":
		return resolvePrompt(loaded.UserPrompts.ScoreAnswer, configPrompts.ScoreAnswer, DefaultUserPrompts.ScoreAnswer)
	case "resume":
		return resolvePrompt(loaded.UserPrompts.AnalyzeResume, configPrompts.AnalyzeResume, DefaultUserPrompts.AnalyzeResume)
	case "career":
		return resolvePrompt(loaded.UserPrompts.PlanCareer, configPrompts.PlanCareer, DefaultUserPrompts.PlanCareer)
	default:
		return ""
	}
}
