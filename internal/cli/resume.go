package cli

import (
	"fmt"

	"friede/internal/ai"
	"friede/internal/common"
	"friede/internal/types"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [resume-file] [job-description-file]",
	Short: "Analyze a resume with AI",
	Long: `Analyze a resume using AI to extract skills, strengths, gaps and
improvement suggestions. The optional second argument is a job description
file; when given, the analysis is targeted at that posting.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if resumeConfig.OutputFormat == "" {
			resumeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(resumeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runResume,
}

var resumeConfig common.CommandConfig

var resumeTargetRole string

func init() {
	resumeCmd.Flags().StringVarP(&resumeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	resumeCmd.Flags().StringVar(&resumeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	resumeCmd.Flags().StringVarP(&resumeTargetRole, "target-role", "r", "", "Role the resume is aimed at")

	// Add completion for format flag
	_ = resumeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runResume(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the resume operation
	aiService, err := ai.NewService(cfg, "resume", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	createInput := func(contents []string) (types.ResumeInput, error) {
		if len(contents) == 0 {
			return types.ResumeInput{}, fmt.Errorf("expected at least 1 file path")
		}
		input := types.ResumeInput{
			Resume:     contents[0],
			TargetRole: resumeTargetRole,
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.ResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"resume_chars", len(input.Resume),
			"job_chars", len(input.JobDescription),
			"target_role", input.TargetRole,
			"output_format", cfg.OutputFormat)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		resumeConfig,
		args,
		createInput,
		aiService.AnalyzeResume,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
