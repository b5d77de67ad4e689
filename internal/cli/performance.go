package cli

import (
	"context"
	"fmt"

	"friede/internal/analysis"
	"friede/internal/common"
	"friede/internal/utils"

	"github.com/spf13/cobra"
)

var performanceCmd = &cobra.Command{
	Use:   "performance [source-file]",
	Short: "Analyze code for performance pitfalls",
	Long: `Analyze a source file for performance pitfalls using static
heuristics: loop nesting depth, recursion and known anti-patterns. The
language is inferred from the file extension unless --language is given.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if performanceConfig.OutputFormat == "" {
			performanceConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(performanceConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPerformance,
}

var performanceConfig common.CommandConfig

var performanceLanguage string

func init() {
	performanceCmd.Flags().StringVarP(&performanceConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	performanceCmd.Flags().StringVar(&performanceConfig.OutputFormat, "format", "", "Output format: json or text")
	performanceCmd.Flags().StringVarP(&performanceLanguage, "language", "l", "", "Source language (default: inferred from extension)")
}

func runPerformance(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	language := performanceLanguage
	if language == "" {
		language = utils.LanguageHint(args[0])
	}

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting code performance analysis",
			"language", language,
			"source_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, input string) (analysis.PerformanceReport, error) {
		return analysis.AnalyzeCodePerformance(input, language), nil
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		performanceConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze code: %w", err)
	}
	logger.Info("Code performance analysis completed successfully")
	return nil
}
