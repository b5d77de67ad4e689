package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptContent := "Test system prompt for interview generation"
	userPromptContent := "Test user prompt template: %s and %s"

	systemPromptFile := filepath.Join(tempDir, "system.interview.md")
	userPromptFile := filepath.Join(tempDir, "user.interview.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Interview: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						GenerateInterviewFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						GenerateInterviewFile: userPromptFile,
					},
				},
			},
		},
	}

	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	loadedOps := GetPromptsForOperation("interview")

	if loadedOps.SystemPrompts.GenerateInterview != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.GenerateInterview)
	}

	if loadedOps.UserPrompts.GenerateInterview != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.GenerateInterview)
	}

	// File paths are preserved, only loaded content changes
	if config.AI.Interview.CustomPrompts.SystemPrompts.GenerateInterviewFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Feedback: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ScoreAnswerFile: validFile,
					},
				},
			},
		},
	}

	if err := config.validatePromptFiles(); err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	config.AI.Feedback.CustomPrompts.SystemPrompts.ScoreAnswerFile = filepath.Join(tempDir, "missing.md")
	if err := config.validatePromptFiles(); err == nil {
		t.Error("Expected validation to fail for missing file")
	}
}

func TestLoadPromptFromFileEmpty(t *testing.T) {
	tempDir := t.TempDir()

	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte("   \n\t  "), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	config := &Config{}
	if _, err := config.loadPromptFromFile(emptyFile, "system", "scoreAnswer"); err == nil {
		t.Error("Expected error for whitespace-only prompt file")
	}
}

func TestGetPromptsForOperationFallsBackToGlobal(t *testing.T) {
	setLoadedPrompts(AllLoadedPrompts{
		Global: LoadedPrompts{
			SystemPrompts: LoadedSystemPrompts{PlanCareer: "global career prompt"},
		},
	})
	t.Cleanup(func() { setLoadedPrompts(AllLoadedPrompts{}) })

	prompts := GetPromptsForOperation("unknown")
	if prompts.SystemPrompts.PlanCareer != "global career prompt" {
		t.Errorf("Expected global prompts for unknown operation, got %+v", prompts)
	}
}

func TestPromptWatcherReloadsOnChange(t *testing.T) {
	tempDir := t.TempDir()

	promptFile := filepath.Join(tempDir, "system.interview.md")
	if err := os.WriteFile(promptFile, []byte("original prompt"), 0600); err != nil {
		t.Fatalf("Failed to create prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Interview: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						GenerateInterviewFile: promptFile,
					},
				},
			},
		},
	}
	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts: %v", err)
	}
	t.Cleanup(func() { setLoadedPrompts(AllLoadedPrompts{}) })

	reloaded := make(chan error, 1)
	watcher := NewPromptWatcher(config, 50*time.Millisecond, func(err error) {
		select {
		case reloaded <- err:
		default:
		}
	})
	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start prompt watcher: %v", err)
	}
	t.Cleanup(func() { _ = watcher.Stop() })

	if !watcher.IsRunning() {
		t.Fatal("Expected watcher to be running")
	}

	// Touch the file with new content and wait for the debounced reload
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(promptFile, []byte("updated prompt"), 0600); err != nil {
		t.Fatalf("Failed to update prompt file: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for prompt reload")
	}

	prompts := GetPromptsForOperation("interview")
	if prompts.SystemPrompts.GenerateInterview != "updated prompt" {
		t.Errorf("Expected reloaded prompt content, got '%s'", prompts.SystemPrompts.GenerateInterview)
	}
}

func TestPromptWatcherNoFiles(t *testing.T) {
	watcher := NewPromptWatcher(&Config{}, 0, nil)
	if err := watcher.Start(); err != nil {
		t.Fatalf("Expected no-op start with no files, got error: %v", err)
	}
	if watcher.IsRunning() {
		t.Error("Expected watcher to stay stopped with no files to watch")
	}
}
