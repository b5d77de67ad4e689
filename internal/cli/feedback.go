package cli

import (
	"fmt"

	"friede/internal/ai"
	"friede/internal/common"
	"friede/internal/types"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [question-file] [answer-file]",
	Short: "Score an interview answer",
	Long: `Score a candidate answer against an interview question using AI.
The command takes two arguments: the path to the question file and the
path to the answer file. Both files should be in plain text format.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if feedbackConfig.OutputFormat == "" {
			feedbackConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(feedbackConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runFeedback,
}

var feedbackConfig common.CommandConfig

var feedbackRole string

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	feedbackCmd.Flags().StringVar(&feedbackConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	feedbackCmd.Flags().StringVarP(&feedbackRole, "role", "r", "", "Target role the answer is judged against")

	// Add completion for format flag
	_ = feedbackCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runFeedback(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the feedback operation
	aiService, err := ai.NewService(cfg, "feedback", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	createInput := func(contents []string) (types.FeedbackInput, error) {
		if len(contents) != 2 {
			return types.FeedbackInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.FeedbackInput{
			Role:     feedbackRole,
			Question: contents[0],
			Answer:   contents[1],
		}, nil
	}

	logDetails := func(input types.FeedbackInput, cfg common.CommandConfig) {
		logger.Info("Starting answer scoring",
			"role", input.Role,
			"question_chars", len(input.Question),
			"answer_chars", len(input.Answer),
			"output_format", cfg.OutputFormat)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		feedbackConfig,
		args,
		createInput,
		aiService.ScoreAnswer,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score answer: %w", err)
	}
	logger.Info("Answer scoring completed successfully")
	return nil
}
