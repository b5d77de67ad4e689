package cli

import (
	"context"
	"fmt"

	"friede/internal/analysis"
	"friede/internal/common"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [text-file]",
	Short: "Check whether a text looks AI generated",
	Long: `Check whether a text looks AI generated. The verdict is derived
from local heuristics over phrase frequency, sentence length uniformity and
vocabulary, with no external service involved.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if detectConfig.OutputFormat == "" {
			detectConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(detectConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runDetect,
}

var detectConfig common.CommandConfig

func init() {
	detectCmd.Flags().StringVarP(&detectConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	detectCmd.Flags().StringVar(&detectConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting AI text detection",
			"text_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, input string) (analysis.AIDetectionReport, error) {
		return analysis.DetectAI(input), nil
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		detectConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze text: %w", err)
	}
	logger.Info("AI text detection completed successfully")
	return nil
}
