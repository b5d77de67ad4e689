package ai

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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
)

// OpenAIProvider implements Provider against a backend proxy exposing the
// chat-completions wire format. The proxy holds the real OpenAI credentials;
// this client only carries an optional bearer token for the proxy itself.
type OpenAIProvider struct {
	baseURL        string
	apiKey         string
	model          string
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *HTTPCircuitBreaker
	logger         *frErrors.Logger
}

// Ensure OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI proxy provider for a specific operation
func NewOpenAIProvider(providerCfg config.ProviderConfig, cfg *config.OperationAIConfig, operationType string, logger *frErrors.Logger) (*OpenAIProvider, error) {
	if providerCfg.BaseURL == "" {
		return nil, frErrors.NewConfigError(frErrors.ErrCodeInvalidConfig,
			"OpenAI proxy base URL is required", nil)
	}

	model := providerCfg.Model
	if model == "" {
		model = cfg.Model
	}

	return &OpenAIProvider{
		baseURL: strings.TrimRight(providerCfg.BaseURL, "/"),
		apiKey:  providerCfg.APIKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewHTTPCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// Name implements Provider
func (o *OpenAIProvider) Name() string { return "openai" }

// chatRequest is the chat-completions request body the proxy accepts
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float32       `json:"temperature,omitempty"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

// chatResponse is the subset of the chat-completions response we consume
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// proxyError carries the HTTP status code so retry classification can
// distinguish transient upstream failures from client errors.
type proxyError struct {
	StatusCode int
	Body       string
}

func (e *proxyError) Error() string {
	return fmt.Sprintf("proxy returned status %d: %s", e.StatusCode, e.Body)
}

// isRetryableProxyError determines if a proxy error should trigger a retry
func isRetryableProxyError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pErr *proxyError
	if errors.As(err, &pErr) {
		return retryableStatus(pErr.StatusCode)
	}

	return false
}

// post sends one chat-completions request and returns the raw response body
func (o *OpenAIProvider) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &proxyError{StatusCode: resp.StatusCode, Body: truncateForLog(string(respBody))}
	}

	return respBody, nil
}

func truncateForLog(s string) string {
	const max = 256
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// executeWithRetry executes a proxy request with retry logic and exponential backoff
func (o *OpenAIProvider) executeWithRetry(ctx context.Context, operation string, fn func() ([]byte, error)) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= *o.config.MaxRetries; attempt++ {
		if attempt > 0 {
			o.logger.Warn("Retrying AI operation",
				"operation", operation,
				"provider", "openai",
				"attempt", attempt,
				"max_retries", *o.config.MaxRetries,
				"error", lastErr.Error())

			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !isRetryableProxyError(err) {
			o.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *o.config.MaxRetries, lastErr)
}

// stripCodeFences removes a surrounding markdown code fence from model output.
// Chat models routinely wrap JSON payloads in ```json fences even when asked
// not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// executeProxyOperation runs one chat-completions call with tracing, circuit
// breaker, retry, and JSON parsing of the model output.
func executeProxyOperation[Out any](
	o *OpenAIProvider,
	ctx context.Context,
	operationName string,
	systemPrompt string,
	userPrompt string,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("friede.ai.openai")
	ctx, span := tracer.Start(ctx, "openai."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", o.model),
		attribute.Float64("ai.temperature", float64(*o.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	messages := make([]chatMessage, 0, 2)
	if *o.config.UseSystemPrompts && systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	reqBody, err := json.Marshal(chatRequest{
		Model:          o.model,
		Messages:       messages,
		Temperature:    *o.config.Temperature,
		ResponseFormat: &chatFormat{Type: "json_object"},
	})
	if err != nil {
		return output, nil, frErrors.NewInternalError(frErrors.ErrCodeInternal, "Failed to encode proxy request", err)
	}

	respBody, err := o.circuitBreaker.Execute(func() ([]byte, error) {
		return o.executeWithRetry(ctx, operationName, func() ([]byte, error) {
			return o.post(ctx, reqBody)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIResponseParse, "Failed to decode proxy response for "+operationName, err)
	}
	if chatResp.Error != nil {
		err := fmt.Errorf("proxy error: %s (%s)", chatResp.Error.Message, chatResp.Error.Type)
		span.RecordError(err)
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIServiceFailed, "Proxy reported an error for "+operationName, err)
	}
	if len(chatResp.Choices) == 0 {
		err := fmt.Errorf("proxy response contained no choices")
		span.RecordError(err)
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIResponseParse, "Empty proxy response for "+operationName, err)
	}

	content := stripCodeFences(chatResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, frErrors.NewAIError(frErrors.ErrCodeAIResponseParse, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := &TokenUsage{
		InputTokens:  chatResp.Usage.PromptTokens,
		OutputTokens: chatResp.Usage.CompletionTokens,
		TotalTokens:  chatResp.Usage.TotalTokens,
	}
	span.SetAttributes(
		attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
		attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
		attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		attribute.Bool("success", true),
	)

	return output, tokenUsage, nil
}

// jsonOnlySuffix is appended to every user prompt because the proxy does not
// support structured output schemas the way the Gemini API does.
const jsonOnlySuffix = "\n\nRespond with a single JSON object only. Do not include any prose outside the JSON."

// GenerateInterview implements Provider for mock interview generation
func (o *OpenAIProvider) GenerateInterview(ctx context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error) {
	systemPrompt := o.getSystemPrompt("interview")
	userPrompt := fmt.Sprintf(o.getUserPrompt("interview"),
		input.Role, input.Difficulty, strings.Join(input.Focus, ", "), input.Count, input.Resume) +
		`

The JSON object must have keys "opening" (string) and "questions" (array of
objects with keys "category", "question", "whyAsked", "hints").` + jsonOnlySuffix

	output, tokenUsage, err := executeProxyOperation[types.InterviewOutput](
		o, ctx, "generate_interview", systemPrompt, userPrompt,
		attribute.String("input.role", input.Role),
		attribute.Int("input.question_count", input.Count),
	)
	if err != nil {
		return types.InterviewOutput{}, nil, err
	}

	output.Role = input.Role
	output.Provider = "openai"
	return output, tokenUsage, nil
}

// ScoreAnswer implements Provider for interview answer assessment
func (o *OpenAIProvider) ScoreAnswer(ctx context.Context, input types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error) {
	systemPrompt := o.getSystemPrompt("feedback")
	userPrompt := fmt.Sprintf(o.getUserPrompt("feedback"),
		input.Role, input.Question, input.Answer) +
		`

The JSON object must have keys "score" (integer 0-100), "verdict" (string),
"strengths" (array of strings), "improvements" (array of strings), and
"modelAnswer" (string).` + jsonOnlySuffix

	output, tokenUsage, err := executeProxyOperation[types.FeedbackOutput](
		o, ctx, "score_answer", systemPrompt, userPrompt,
		attribute.Int("input.answer_length", len(input.Answer)),
	)
	if err != nil {
		return types.FeedbackOutput{}, nil, err
	}

	output.Provider = "openai"
	return output, tokenUsage, nil
}

// AnalyzeResume implements Provider for resume analysis
func (o *OpenAIProvider) AnalyzeResume(ctx context.Context, input types.ResumeInput) (types.ResumeOutput, *TokenUsage, error) {
	systemPrompt := o.getSystemPrompt("resume")
	userPrompt := fmt.Sprintf(o.getUserPrompt("resume"),
		input.TargetRole, input.JobDescription, input.Resume) +
		`

The JSON object must have keys "summary" (string), "skills", "strengths",
"gaps" (arrays of strings), and "roleFit" (string).` + jsonOnlySuffix

	output, tokenUsage, err := executeProxyOperation[types.ResumeOutput](
		o, ctx, "analyze_resume", systemPrompt, userPrompt,
		attribute.Int("input.resume_length", len(input.Resume)),
	)
	if err != nil {
		return types.ResumeOutput{}, nil, err
	}

	output.Provider = "openai"
	return output, tokenUsage, nil
}

// PlanCareer implements Provider for career pathway planning
func (o *OpenAIProvider) PlanCareer(ctx context.Context, input types.CareerInput) (types.CareerOutput, *TokenUsage, error) {
	systemPrompt := o.getSystemPrompt("career")
	userPrompt := fmt.Sprintf(o.getUserPrompt("career"),
		input.TargetRole, strings.Join(input.CurrentSkills, ", "), input.ExperienceYears) +
		`

The JSON object must have keys "readiness" (integer 0-100), "matchedSkills",
"missingSkills" (arrays of strings), "milestones" (array of objects with
"title", "description", "durationWeeks"), and "courses" (array of objects
with "skill", "title", "platform").` + jsonOnlySuffix

	output, tokenUsage, err := executeProxyOperation[types.CareerOutput](
		o, ctx, "plan_career", systemPrompt, userPrompt,
		attribute.String("input.target_role", input.TargetRole),
	)
	if err != nil {
		return types.CareerOutput{}, nil, err
	}

	output.TargetRole = input.TargetRole
	output.Provider = "openai"
	return output, tokenUsage, nil
}

// GetModelInfo reports proxy reachability rather than model metadata, since
// the proxy does not expose a model listing endpoint.
func (o *OpenAIProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Provider:  "openai",
		Name:      o.model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, o.baseURL+"/health", nil)
	if err != nil {
		modelInfo.Error = err.Error()
		return modelInfo
	}
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		modelInfo.Error = fmt.Sprintf("proxy health check failed: %v", err)
		o.logger.Warn("Model availability check failed",
			"model", o.model,
			"provider", "openai",
			"error", err.Error())
		return modelInfo
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		modelInfo.Error = fmt.Sprintf("proxy health check returned status %d", resp.StatusCode)
		return modelInfo
	}

	modelInfo.Available = true
	return modelInfo
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (o *OpenAIProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":   o.circuitBreaker.GetStats(),
		"overall_healthy": o.circuitBreaker.IsHealthy(),
	}
}

// Close implements Provider
func (o *OpenAIProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}

// getSystemPrompt returns the appropriate system prompt for the operation
func (o *OpenAIProvider) getSystemPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	configPrompts := o.config.CustomPrompts.SystemPrompts

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
func (o *OpenAIProvider) getUserPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	configPrompts := o.config.CustomPrompts.UserPrompts

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
