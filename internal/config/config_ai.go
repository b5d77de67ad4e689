package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetInterviewConfig returns the AI configuration for interview generation with fallback to global config
func (c *Config) GetInterviewConfig() OperationAIConfig {
	config := c.AI.Interview

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.GenerateInterview == "" {
		config.CustomPrompts.SystemPrompts.GenerateInterview = c.AI.CustomPrompts.SystemPrompts.GenerateInterview
	}
	if config.CustomPrompts.UserPrompts.GenerateInterview == "" {
		config.CustomPrompts.UserPrompts.GenerateInterview = c.AI.CustomPrompts.UserPrompts.GenerateInterview
	}
	if config.CustomPrompts.SystemPrompts.GenerateInterviewFile == "" {
		config.CustomPrompts.SystemPrompts.GenerateInterviewFile = c.AI.CustomPrompts.SystemPrompts.GenerateInterviewFile
	}
	if config.CustomPrompts.UserPrompts.GenerateInterviewFile == "" {
		config.CustomPrompts.UserPrompts.GenerateInterviewFile = c.AI.CustomPrompts.UserPrompts.GenerateInterviewFile
	}

	return config
}

// GetFeedbackConfig returns the AI configuration for answer scoring with fallback to global config
func (c *Config) GetFeedbackConfig() OperationAIConfig {
	config := c.AI.Feedback

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.ScoreAnswer == "" {
		config.CustomPrompts.SystemPrompts.ScoreAnswer = c.AI.CustomPrompts.SystemPrompts.ScoreAnswer
	}
	if config.CustomPrompts.UserPrompts.ScoreAnswer == "" {
		config.CustomPrompts.UserPrompts.ScoreAnswer = c.AI.CustomPrompts.UserPrompts.ScoreAnswer
	}
	if config.CustomPrompts.SystemPrompts.ScoreAnswerFile == "" {
		config.CustomPrompts.SystemPrompts.ScoreAnswerFile = c.AI.CustomPrompts.SystemPrompts.ScoreAnswerFile
	}
	if config.CustomPrompts.UserPrompts.ScoreAnswerFile == "" {
		config.CustomPrompts.UserPrompts.ScoreAnswerFile = c.AI.CustomPrompts.UserPrompts.ScoreAnswerFile
	}

	return config
}

// GetResumeConfig returns the AI configuration for resume analysis with fallback to global config
func (c *Config) GetResumeConfig() OperationAIConfig {
	config := c.AI.Resume

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.AnalyzeResume == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResume = c.AI.CustomPrompts.SystemPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}
	if config.CustomPrompts.SystemPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile
	}

	return config
}

// GetCareerConfig returns the AI configuration for career planning with fallback to global config
func (c *Config) GetCareerConfig() OperationAIConfig {
	config := c.AI.Career

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.PlanCareer == "" {
		config.CustomPrompts.SystemPrompts.PlanCareer = c.AI.CustomPrompts.SystemPrompts.PlanCareer
	}
	if config.CustomPrompts.UserPrompts.PlanCareer == "" {
		config.CustomPrompts.UserPrompts.PlanCareer = c.AI.CustomPrompts.UserPrompts.PlanCareer
	}
	if config.CustomPrompts.SystemPrompts.PlanCareerFile == "" {
		config.CustomPrompts.SystemPrompts.PlanCareerFile = c.AI.CustomPrompts.SystemPrompts.PlanCareerFile
	}
	if config.CustomPrompts.UserPrompts.PlanCareerFile == "" {
		config.CustomPrompts.UserPrompts.PlanCareerFile = c.AI.CustomPrompts.UserPrompts.PlanCareerFile
	}

	return config
}

// GetProviderConfig returns the connection settings for a named provider
func (c *Config) GetProviderConfig(name string) ProviderConfig {
	switch name {
	case "gemini":
		return c.AI.Providers.Gemini
	case "openai":
		return c.AI.Providers.OpenAI
	default:
		return ProviderConfig{}
	}
}

// ProviderChain returns the configured provider order with the fallback
// provider always appended last.
func (c *Config) ProviderChain() []string {
	chain := make([]string, 0, len(c.AI.Providers.Order)+1)
	for _, name := range c.AI.Providers.Order {
		if name == "fallback" {
			continue
		}
		chain = append(chain, name)
	}
	return append(chain, "fallback")
}

// GetLoadedInterviewPrompts returns a copy of the loaded prompts for interview generation
func (c *Config) GetLoadedInterviewPrompts() OperationLoadedPrompts {
	return getLoadedPromptsCopy().Interview
}

// GetLoadedFeedbackPrompts returns a copy of the loaded prompts for answer scoring
func (c *Config) GetLoadedFeedbackPrompts() OperationLoadedPrompts {
	return getLoadedPromptsCopy().Feedback
}

// GetLoadedResumePrompts returns a copy of the loaded prompts for resume analysis
func (c *Config) GetLoadedResumePrompts() OperationLoadedPrompts {
	return getLoadedPromptsCopy().Resume
}

// GetLoadedCareerPrompts returns a copy of the loaded prompts for career planning
func (c *Config) GetLoadedCareerPrompts() OperationLoadedPrompts {
	return getLoadedPromptsCopy().Career
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return getLoadedPromptsCopy().Global
}
