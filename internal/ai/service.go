package ai

import (
	"context"
	"fmt"

	"friede/internal/config"
	"friede/internal/errors"
	"friede/internal/types"
)

// chainEntry pairs a provider with its admission gate. The fallback provider
// carries a nil gate and is always admitted.
type chainEntry struct {
	provider Provider
	admit    *admission
}

// Service handles AI operations for a single operation type. Requests walk an
// ordered provider chain: a provider that is rate limited, over its daily
// quota, or failing is skipped and the next provider is tried. The chain
// always ends with the canned fallback, so operations degrade rather than
// fail when every upstream is unavailable.
type Service struct {
	chain         []chainEntry
	config        *config.OperationAIConfig
	operationType string
	logger        *errors.Logger
}

// NewService creates a new AI service instance for a specific operation
func NewService(cfg *config.Config, operationType string, logger *errors.Logger) (*Service, error) {
	opCfg, err := operationConfig(cfg, operationType)
	if err != nil {
		return nil, err
	}

	logger.Debug("Initializing AI service",
		"operation_type", operationType,
		"provider_chain", cfg.ProviderChain(),
		"model", opCfg.Model,
		"temperature", *opCfg.Temperature,
		"timeout", *opCfg.Timeout,
		"max_retries", *opCfg.MaxRetries,
		"use_system_prompts", *opCfg.UseSystemPrompts)

	var chain []chainEntry
	for _, name := range cfg.ProviderChain() {
		switch name {
		case "gemini":
			providerCfg := cfg.GetProviderConfig("gemini")
			if !providerCfg.Enabled {
				continue
			}
			provider, err := NewGeminiProvider(opCfg, operationType, logger)
			if err != nil {
				logger.Warn("Skipping gemini provider, initialization failed",
					"operation_type", operationType, "error", err)
				continue
			}
			chain = append(chain, chainEntry{
				provider: provider,
				admit:    getAdmission("gemini", providerCfg),
			})
		case "openai":
			providerCfg := cfg.GetProviderConfig("openai")
			if !providerCfg.Enabled {
				continue
			}
			provider, err := NewOpenAIProvider(providerCfg, opCfg, operationType, logger)
			if err != nil {
				logger.Warn("Skipping openai provider, initialization failed",
					"operation_type", operationType, "error", err)
				continue
			}
			chain = append(chain, chainEntry{
				provider: provider,
				admit:    getAdmission("openai", providerCfg),
			})
		case "fallback":
			chain = append(chain, chainEntry{provider: NewFallbackProvider()})
		default:
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("Unsupported AI provider: %s", name), nil)
		}
	}

	if len(chain) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"No AI providers available for operation "+operationType, nil)
	}

	return &Service{
		chain:         chain,
		config:        opCfg,
		operationType: operationType,
		logger:        logger,
	}, nil
}

// operationConfig resolves the merged configuration for an operation type
func operationConfig(cfg *config.Config, operationType string) (*config.OperationAIConfig, error) {
	var opCfg config.OperationAIConfig
	switch operationType {
	case "interview":
		opCfg = cfg.GetInterviewConfig()
	case "feedback":
		opCfg = cfg.GetFeedbackConfig()
	case "resume":
		opCfg = cfg.GetResumeConfig()
	case "career":
		opCfg = cfg.GetCareerConfig()
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unknown AI operation type: %s", operationType), nil)
	}
	return &opCfg, nil
}

// OperationType returns the operation this service is configured for
func (s *Service) OperationType() string { return s.operationType }

// dispatch walks the provider chain for one request. Providers that fail
// admission are skipped without consuming their daily quota; providers that
// return an error are logged and the next one is tried.
func dispatch[Out any](ctx context.Context, s *Service, call func(Provider) (Out, *TokenUsage, error)) (Out, *TokenUsage, error) {
	var zero Out
	var lastErr error

	for _, entry := range s.chain {
		name := entry.provider.Name()

		if entry.admit != nil && !entry.admit.Allow() {
			s.logger.Warn("Provider admission denied, trying next in chain",
				"operation_type", s.operationType,
				"provider", name,
				"quota_remaining", entry.admit.QuotaRemaining())
			continue
		}

		out, usage, err := call(entry.provider)
		if err != nil {
			lastErr = err
			s.logger.Warn("Provider call failed, trying next in chain",
				"operation_type", s.operationType,
				"provider", name,
				"error", err)
			continue
		}

		if name != "fallback" {
			s.logger.Debug("Provider call succeeded",
				"operation_type", s.operationType, "provider", name)
		} else {
			s.logger.Info("Serving canned fallback content",
				"operation_type", s.operationType)
		}
		return out, usage, nil
	}

	return zero, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
		"All AI providers failed for operation "+s.operationType, lastErr)
}

// GenerateInterview produces mock-interview content through the provider chain
func (s *Service) GenerateInterview(ctx context.Context, input types.InterviewInput) (types.InterviewOutput, *TokenUsage, error) {
	return dispatch(ctx, s, func(p Provider) (types.InterviewOutput, *TokenUsage, error) {
		return p.GenerateInterview(ctx, input)
	})
}

// ScoreAnswer scores a candidate answer through the provider chain
func (s *Service) ScoreAnswer(ctx context.Context, input types.FeedbackInput) (types.FeedbackOutput, *TokenUsage, error) {
	return dispatch(ctx, s, func(p Provider) (types.FeedbackOutput, *TokenUsage, error) {
		return p.ScoreAnswer(ctx, input)
	})
}

// AnalyzeResume analyzes a resume through the provider chain
func (s *Service) AnalyzeResume(ctx context.Context, input types.ResumeInput) (types.ResumeOutput, *TokenUsage, error) {
	return dispatch(ctx, s, func(p Provider) (types.ResumeOutput, *TokenUsage, error) {
		return p.AnalyzeResume(ctx, input)
	})
}

// PlanCareer plans a career pathway through the provider chain
func (s *Service) PlanCareer(ctx context.Context, input types.CareerInput) (types.CareerOutput, *TokenUsage, error) {
	return dispatch(ctx, s, func(p Provider) (types.CareerOutput, *TokenUsage, error) {
		return p.PlanCareer(ctx, input)
	})
}

// GetModelInfo returns model information for every provider in the chain,
// used by health checks and the stats endpoint
func (s *Service) GetModelInfo(ctx context.Context) []*ModelInfo {
	infos := make([]*ModelInfo, 0, len(s.chain))
	for _, entry := range s.chain {
		infos = append(infos, entry.provider.GetModelInfo(ctx))
	}
	return infos
}

// QuotaStatus reports the remaining daily quota per rate-limited provider.
// A value of -1 means the provider has no daily limit configured.
func (s *Service) QuotaStatus() map[string]int {
	status := make(map[string]int)
	for _, entry := range s.chain {
		if entry.admit != nil {
			status[entry.provider.Name()] = entry.admit.QuotaRemaining()
		}
	}
	return status
}

// Close releases resources held by every provider in the chain
func (s *Service) Close() error {
	var firstErr error
	for _, entry := range s.chain {
		if err := entry.provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
