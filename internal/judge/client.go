package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"friede/internal/config"
	"friede/internal/errors"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Client talks to a Judge0 instance. It supports both self-hosted deployments
// and the RapidAPI-hosted one, which needs the X-RapidAPI headers.
type Client struct {
	baseURL        string
	apiKey         string
	rapidAPIHost   string
	httpClient     *http.Client
	config         *config.JudgeConfig
	circuitBreaker *gobreaker.CircuitBreaker[[]byte]
	logger         *errors.Logger
}

// NewClient creates a Judge0 client from configuration
func NewClient(cfg *config.JudgeConfig, logger *errors.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Judge0 base URL is required", nil)
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Invalid Judge0 base URL", err)
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		rapidAPIHost: parsed.Host,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		config:       cfg,
		logger:       logger,
	}

	if cfg.CircuitBreaker.Enabled {
		c.circuitBreaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "Judge0",
			MaxRequests: cfg.CircuitBreaker.MaxRequests,
			Interval:    cfg.CircuitBreaker.Interval,
			Timeout:     cfg.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
					failureRatio >= cfg.CircuitBreaker.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String())
			},
		})
	}

	return c, nil
}

// createSubmissionBody is the Judge0 submission request with base64 encoding
type createSubmissionBody struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin,omitempty"`
	ExpectedOutput string  `json:"expected_output,omitempty"`
	CPUTimeLimit   float64 `json:"cpu_time_limit,omitempty"`
	MemoryLimit    int     `json:"memory_limit,omitempty"`
}

type createSubmissionResponse struct {
	Token string `json:"token"`
}

// submissionStatus is the nested status object Judge0 returns
type submissionStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// submissionResponse is a Judge0 submission with base64-encoded text fields
type submissionResponse struct {
	Stdout        string           `json:"stdout"`
	Stderr        string           `json:"stderr"`
	CompileOutput string           `json:"compile_output"`
	Message       string           `json:"message"`
	Time          string           `json:"time"`
	Memory        int              `json:"memory"`
	Status        submissionStatus `json:"status"`
}

// SubmissionResult is one decoded Judge0 submission outcome
type SubmissionResult struct {
	StatusID      int    `json:"statusId"`
	Verdict       string `json:"verdict"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	CompileOutput string `json:"compileOutput,omitempty"`
	Message       string `json:"message,omitempty"`
	TimeSeconds   string `json:"timeSeconds,omitempty"`
	MemoryKB      int    `json:"memoryKb,omitempty"`
}

// judgeError carries the HTTP status from a failed Judge0 call
type judgeError struct {
	StatusCode int
	Body       string
}

func (e *judgeError) Error() string {
	return fmt.Sprintf("judge0 returned status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.rapidAPIHost)
	}
}

// do sends one request through the circuit breaker and returns the body
func (c *Client) do(req *http.Request) ([]byte, error) {
	call := func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return nil, &judgeError{StatusCode: resp.StatusCode, Body: truncateBody(string(body))}
		}
		return body, nil
	}

	if c.circuitBreaker == nil {
		return call()
	}
	return c.circuitBreaker.Execute(call)
}

func truncateBody(s string) string {
	const max = 256
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// CreateSubmission posts one submission and returns its Judge0 token.
// Text fields are base64-encoded and the call returns without waiting for
// execution to finish.
func (c *Client) CreateSubmission(ctx context.Context, lang Language, source, stdin, expectedOutput string) (string, error) {
	body, err := json.Marshal(createSubmissionBody{
		SourceCode:     base64.StdEncoding.EncodeToString([]byte(source)),
		LanguageID:     lang.ID,
		Stdin:          base64.StdEncoding.EncodeToString([]byte(stdin)),
		ExpectedOutput: base64.StdEncoding.EncodeToString([]byte(expectedOutput)),
	})
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInternal, "Failed to encode submission", err)
	}

	endpoint := c.baseURL + "/submissions?base64_encoded=true&wait=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	respBody, err := c.do(req)
	if err != nil {
		return "", errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Failed to create Judge0 submission", err)
	}

	var created createSubmissionResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Failed to decode Judge0 submission response", err)
	}
	if created.Token == "" {
		return "", errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Judge0 returned no submission token", nil)
	}
	return created.Token, nil
}

// GetSubmission fetches one submission by token and decodes its text fields
func (c *Client) GetSubmission(ctx context.Context, token string) (*SubmissionResult, error) {
	endpoint := fmt.Sprintf("%s/submissions/%s?base64_encoded=true", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	respBody, err := c.do(req)
	if err != nil {
		return nil, errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Failed to fetch Judge0 submission", err)
	}

	var sub submissionResponse
	if err := json.Unmarshal(respBody, &sub); err != nil {
		return nil, errors.NewJudgeError(errors.ErrCodeJudgeUnavailable,
			"Failed to decode Judge0 submission", err)
	}

	result := &SubmissionResult{
		StatusID:      sub.Status.ID,
		Stdout:        decodeBase64(sub.Stdout),
		Stderr:        decodeBase64(sub.Stderr),
		CompileOutput: decodeBase64(sub.CompileOutput),
		Message:       decodeBase64(sub.Message),
		TimeSeconds:   sub.Time,
		MemoryKB:      sub.Memory,
	}
	if isTerminalStatus(sub.Status.ID) {
		result.Verdict = verdictForStatus(sub.Status.ID)
	}
	return result, nil
}

// decodeBase64 tolerates plain-text fields from non-encoding deployments
func decodeBase64(s string) string {
	if s == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return string(decoded)
}

// Execute submits source code and polls until a terminal status, the poll
// budget runs out, or the context is done. An exhausted poll budget yields a
// Processing Timeout verdict rather than an error.
func (c *Client) Execute(ctx context.Context, lang Language, source, stdin, expectedOutput string) (*SubmissionResult, error) {
	tracer := otel.Tracer("friede.judge")
	ctx, span := tracer.Start(ctx, "judge.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("judge.language", lang.Name),
		attribute.Int("judge.language_id", lang.ID),
	)

	token, err := c.CreateSubmission(ctx, lang, source, stdin, expectedOutput)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("judge.token", token))

	interval := c.config.PollInterval
	for attempt := 0; attempt < c.config.MaxPolls; attempt++ {
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		result, err := c.GetSubmission(ctx, token)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if isTerminalStatus(result.StatusID) {
			c.applyOutputComparison(result, expectedOutput)
			span.SetAttributes(attribute.String("judge.verdict", result.Verdict))
			return result, nil
		}

		interval = time.Duration(float64(interval) * c.config.PollBackoff)
	}

	c.logger.Warn("Judge0 poll budget exhausted",
		"token", token,
		"max_polls", c.config.MaxPolls)
	span.SetAttributes(attribute.String("judge.verdict", VerdictProcessingTimeout))
	return &SubmissionResult{Verdict: VerdictProcessingTimeout}, errors.NewJudgeError(
		errors.ErrCodeJudgePollTimeout,
		fmt.Sprintf("Submission still processing after %d polls", c.config.MaxPolls), nil)
}

// applyOutputComparison re-judges Accepted/Wrong Answer locally with the
// normalization heuristics. Judge0 compares outputs byte for byte, which
// flags correct answers that differ only in trailing whitespace or element
// order.
func (c *Client) applyOutputComparison(result *SubmissionResult, expectedOutput string) {
	if expectedOutput == "" {
		return
	}
	if result.StatusID != statusAccepted && result.StatusID != statusWrongAnswer {
		return
	}
	if OutputsMatch(expectedOutput, result.Stdout) {
		result.Verdict = VerdictAccepted
	} else {
		result.Verdict = VerdictWrongAnswer
	}
}

// Ping checks Judge0 reachability for health reporting
func (c *Client) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	_, err = c.do(req)
	if err != nil {
		return errors.NewJudgeError(errors.ErrCodeJudgeUnavailable, "Judge0 is unreachable", err)
	}
	return nil
}

// IsHealthy reports circuit breaker health for the stats endpoint
func (c *Client) IsHealthy() bool {
	if c.circuitBreaker == nil {
		return true
	}
	return c.circuitBreaker.State() == gobreaker.StateClosed
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (c *Client) GetCircuitBreakerStats() map[string]any {
	if c.circuitBreaker == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    c.circuitBreaker.Name(),
		"state":   c.circuitBreaker.State().String(),
		"counts":  c.circuitBreaker.Counts(),
		"enabled": true,
	}
}
