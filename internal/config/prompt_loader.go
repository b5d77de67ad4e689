package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	var loaded AllLoadedPrompts

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loaded.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loaded.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	ops := []struct {
		name   string
		cfg    *OperationAIConfig
		target *OperationLoadedPrompts
	}{
		{"interview", &c.AI.Interview, &loaded.Interview},
		{"feedback", &c.AI.Feedback, &loaded.Feedback},
		{"resume", &c.AI.Resume, &loaded.Resume},
		{"career", &c.AI.Career, &loaded.Career},
	}
	for _, op := range ops {
		if err := c.loadSystemPromptsFromFiles(&op.cfg.CustomPrompts.SystemPrompts, &op.target.SystemPrompts); err != nil {
			return fmt.Errorf("failed to load %s system prompts: %w", op.name, err)
		}
		if err := c.loadUserPromptsFromFiles(&op.cfg.CustomPrompts.UserPrompts, &op.target.UserPrompts); err != nil {
			return fmt.Errorf("failed to load %s user prompts: %w", op.name, err)
		}
	}

	setLoadedPrompts(loaded)
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.GenerateInterviewFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateInterviewFile, "system", "generateInterview")
		if err != nil {
			return err
		}
		target.GenerateInterview = content
	}

	if prompts.ScoreAnswerFile != "" {
		content, err := c.loadPromptFromFile(prompts.ScoreAnswerFile, "system", "scoreAnswer")
		if err != nil {
			return err
		}
		target.ScoreAnswer = content
	}

	if prompts.AnalyzeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.AnalyzeResumeFile, "system", "analyzeResume")
		if err != nil {
			return err
		}
		target.AnalyzeResume = content
	}

	if prompts.PlanCareerFile != "" {
		content, err := c.loadPromptFromFile(prompts.PlanCareerFile, "system", "planCareer")
		if err != nil {
			return err
		}
		target.PlanCareer = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.GenerateInterviewFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateInterviewFile, "user", "generateInterview")
		if err != nil {
			return err
		}
		target.GenerateInterview = content
	}

	if prompts.ScoreAnswerFile != "" {
		content, err := c.loadPromptFromFile(prompts.ScoreAnswerFile, "user", "scoreAnswer")
		if err != nil {
			return err
		}
		target.ScoreAnswer = content
	}

	if prompts.AnalyzeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.AnalyzeResumeFile, "user", "analyzeResume")
		if err != nil {
			return err
		}
		target.AnalyzeResume = content
	}

	if prompts.PlanCareerFile != "" {
		content, err := c.loadPromptFromFile(prompts.PlanCareerFile, "user", "planCareer")
		if err != nil {
			return err
		}
		target.PlanCareer = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// promptFilePaths collects all configured prompt file paths across operations
func (c *Config) promptFilePaths() []string {
	var paths []string
	add := func(p string) {
		if p != "" {
			paths = append(paths, p)
		}
	}

	collect := func(pc *PromptConfig) {
		add(pc.SystemPrompts.GenerateInterviewFile)
		add(pc.SystemPrompts.ScoreAnswerFile)
		add(pc.SystemPrompts.AnalyzeResumeFile)
		add(pc.SystemPrompts.PlanCareerFile)
		add(pc.UserPrompts.GenerateInterviewFile)
		add(pc.UserPrompts.ScoreAnswerFile)
		add(pc.UserPrompts.AnalyzeResumeFile)
		add(pc.UserPrompts.PlanCareerFile)
	}

	collect(&c.AI.CustomPrompts)
	collect(&c.AI.Interview.CustomPrompts)
	collect(&c.AI.Feedback.CustomPrompts)
	collect(&c.AI.Resume.CustomPrompts)
	collect(&c.AI.Career.CustomPrompts)

	return paths
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, filePath := range c.promptFilePaths() {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid prompt file path: %s", filePath))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("prompt file not found: %s", absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	all := getLoadedPromptsCopy()
	promptCount := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{all.Global.SystemPrompts.GenerateInterview, "[CONFIG] Global system interview prompt: loaded from config/file"},
		{all.Global.SystemPrompts.ScoreAnswer, "[CONFIG] Global system feedback prompt: loaded from config/file"},
		{all.Global.SystemPrompts.AnalyzeResume, "[CONFIG] Global system resume prompt: loaded from config/file"},
		{all.Global.SystemPrompts.PlanCareer, "[CONFIG] Global system career prompt: loaded from config/file"},
		{all.Global.UserPrompts.GenerateInterview, "[CONFIG] Global user interview prompt: loaded from config/file"},
		{all.Global.UserPrompts.ScoreAnswer, "[CONFIG] Global user feedback prompt: loaded from config/file"},
		{all.Global.UserPrompts.AnalyzeResume, "[CONFIG] Global user resume prompt: loaded from config/file"},
		{all.Global.UserPrompts.PlanCareer, "[CONFIG] Global user career prompt: loaded from config/file"},
		{all.Interview.SystemPrompts.GenerateInterview, "[CONFIG] Interview-specific system prompt: loaded from config/file"},
		{all.Interview.UserPrompts.GenerateInterview, "[CONFIG] Interview-specific user prompt: loaded from config/file"},
		{all.Feedback.SystemPrompts.ScoreAnswer, "[CONFIG] Feedback-specific system prompt: loaded from config/file"},
		{all.Feedback.UserPrompts.ScoreAnswer, "[CONFIG] Feedback-specific user prompt: loaded from config/file"},
		{all.Resume.SystemPrompts.AnalyzeResume, "[CONFIG] Resume-specific system prompt: loaded from config/file"},
		{all.Resume.UserPrompts.AnalyzeResume, "[CONFIG] Resume-specific user prompt: loaded from config/file"},
		{all.Career.SystemPrompts.PlanCareer, "[CONFIG] Career-specific system prompt: loaded from config/file"},
		{all.Career.UserPrompts.PlanCareer, "[CONFIG] Career-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}
}
