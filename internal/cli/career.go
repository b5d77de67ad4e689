package cli

import (
	"fmt"

	"friede/internal/ai"
	"friede/internal/common"
	"friede/internal/types"

	"github.com/spf13/cobra"
)

var careerCmd = &cobra.Command{
	Use:   "career",
	Short: "Plan a career pathway toward a target role",
	Long: `Plan a career pathway from your current skills toward a target role.
The AI produces milestones, a readiness estimate and skill gaps. Without a
reachable provider a built-in static plan is used instead.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if careerConfig.OutputFormat == "" {
			careerConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(careerConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCareer,
}

var careerConfig common.CommandConfig

var (
	careerSkills     []string
	careerTargetRole string
	careerYears      int
)

func init() {
	careerCmd.Flags().StringVarP(&careerConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	careerCmd.Flags().StringVar(&careerConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	careerCmd.Flags().StringSliceVarP(&careerSkills, "skills", "s", nil, "Current skills, comma separated (required)")
	careerCmd.Flags().StringVarP(&careerTargetRole, "target-role", "r", "", "Role to plan toward (required)")
	careerCmd.Flags().IntVarP(&careerYears, "years", "y", 0, "Years of professional experience")
	_ = careerCmd.MarkFlagRequired("skills")
	_ = careerCmd.MarkFlagRequired("target-role")

	// Add completion for format flag
	_ = careerCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCareer(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the career operation
	aiService, err := ai.NewService(cfg, "career", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	createInput := func(contents []string) (types.CareerInput, error) {
		return types.CareerInput{
			CurrentSkills:   careerSkills,
			TargetRole:      careerTargetRole,
			ExperienceYears: careerYears,
		}, nil
	}

	logDetails := func(input types.CareerInput, cfg common.CommandConfig) {
		logger.Info("Starting career planning",
			"target_role", input.TargetRole,
			"skills_count", len(input.CurrentSkills),
			"experience_years", input.ExperienceYears,
			"output_format", cfg.OutputFormat)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		careerConfig,
		args,
		createInput,
		aiService.PlanCareer,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to plan career pathway: %w", err)
	}
	logger.Info("Career planning completed successfully")
	return nil
}
