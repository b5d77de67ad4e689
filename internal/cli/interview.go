package cli

import (
	"fmt"

	"friede/internal/ai"
	"friede/internal/common"
	"friede/internal/types"

	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [resume-file]",
	Short: "Generate a mock interview for a target role",
	Long: `Generate a mock interview for a target role using AI.
The FRIEDE interviewer persona produces a set of behavioral, technical and
system design questions. Pass a resume file to personalize the questions
to your background.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if interviewConfig.OutputFormat == "" {
			interviewConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(interviewConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runInterview,
}

var interviewConfig common.CommandConfig

var (
	interviewRole       string
	interviewDifficulty string
	interviewFocus      []string
	interviewCount      int
)

func init() {
	interviewCmd.Flags().StringVarP(&interviewConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	interviewCmd.Flags().StringVar(&interviewConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	interviewCmd.Flags().StringVarP(&interviewRole, "role", "r", "", "Target role, e.g. 'backend engineer' (required)")
	interviewCmd.Flags().StringVarP(&interviewDifficulty, "difficulty", "d", "medium", "Question difficulty: easy, medium, or hard")
	interviewCmd.Flags().StringSliceVar(&interviewFocus, "focus", nil, "Question categories: behavioral, technical, system_design (default: all)")
	interviewCmd.Flags().IntVarP(&interviewCount, "count", "n", 0, "Number of questions (default from provider)")
	_ = interviewCmd.MarkFlagRequired("role")

	// Add completion for format flag
	_ = interviewCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runInterview(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the interview operation
	aiService, err := ai.NewService(cfg, "interview", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	createInput := func(contents []string) (types.InterviewInput, error) {
		input := types.InterviewInput{
			Role:       interviewRole,
			Difficulty: interviewDifficulty,
			Focus:      interviewFocus,
			Count:      interviewCount,
		}
		if len(contents) > 0 {
			input.Resume = contents[0]
		}
		return input, nil
	}

	logDetails := func(input types.InterviewInput, cfg common.CommandConfig) {
		logger.Info("Starting interview generation",
			"role", input.Role,
			"difficulty", input.Difficulty,
			"focus", input.Focus,
			"resume_chars", len(input.Resume),
			"output_format", cfg.OutputFormat)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		interviewConfig,
		args,
		createInput,
		aiService.GenerateInterview,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate interview: %w", err)
	}
	logger.Info("Interview generation completed successfully")
	return nil
}
