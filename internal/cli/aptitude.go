package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"friede/internal/aptitude"
	"friede/internal/common"

	"github.com/spf13/cobra"
)

var aptitudeCmd = &cobra.Command{
	Use:   "aptitude",
	Short: "Take and score aptitude tests",
	Long: `Assemble and score aptitude tests from the built-in question bank.
Questions cover quantitative, logical and verbal categories and are
selected deterministically from a seed, so a test can be reproduced.`,
}

var aptitudeTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Assemble an aptitude test",
	Long: `Assemble an aptitude test from the built-in question bank. The same
seed always produces the same questions. Answer keys are not included in
the output; submit answers with 'friede aptitude score'.`,
	Args: cobra.NoArgs,
	RunE: runAptitudeTest,
}

var aptitudeScoreCmd = &cobra.Command{
	Use:   "score [answers-file]",
	Short: "Score submitted aptitude answers",
	Long: `Score submitted aptitude answers. The answers file is a JSON array
of objects with questionId and selectedIndex fields.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if aptitudeScoreConfig.OutputFormat == "" {
			aptitudeScoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(aptitudeScoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAptitudeScore,
}

var (
	aptitudeTestConfig  common.CommandConfig
	aptitudeScoreConfig common.CommandConfig

	aptitudeSeed        int64
	aptitudePerCategory int
)

func init() {
	aptitudeTestCmd.Flags().StringVarP(&aptitudeTestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	aptitudeTestCmd.Flags().Int64Var(&aptitudeSeed, "seed", 0, "Selection seed (default: current time)")
	aptitudeTestCmd.Flags().IntVar(&aptitudePerCategory, "per-category", 0, "Questions per category (default: 2)")

	aptitudeScoreCmd.Flags().StringVarP(&aptitudeScoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	aptitudeScoreCmd.Flags().StringVar(&aptitudeScoreConfig.OutputFormat, "format", "", "Output format: json or text")

	aptitudeCmd.AddCommand(aptitudeTestCmd)
	aptitudeCmd.AddCommand(aptitudeScoreCmd)
}

func runAptitudeTest(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	seed := aptitudeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Question structs hide their answer key, so plain JSON is the only
	// sensible format here
	aptitudeTestConfig.OutputFormat = "json"

	createInput := func(contents []string) (int64, error) {
		return seed, nil
	}

	logDetails := func(input int64, cfg common.CommandConfig) {
		logger.Info("Assembling aptitude test",
			"seed", input,
			"per_category", aptitudePerCategory)
	}

	operation := func(ctx context.Context, input int64) (map[string]any, error) {
		questions := aptitude.AssembleTest(input, aptitudePerCategory)
		return map[string]any{
			"seed":      input,
			"questions": questions,
		}, nil
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		aptitudeTestConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to assemble aptitude test: %w", err)
	}
	return nil
}

func runAptitudeScore(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) ([]aptitude.Answer, error) {
		if len(contents) != 1 {
			return nil, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		var answers []aptitude.Answer
		if err := json.Unmarshal([]byte(contents[0]), &answers); err != nil {
			return nil, fmt.Errorf("failed to parse answers file: %w", err)
		}
		return answers, nil
	}

	logDetails := func(input []aptitude.Answer, cfg common.CommandConfig) {
		logger.Info("Scoring aptitude answers",
			"answer_count", len(input),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, input []aptitude.Answer) (aptitude.Result, error) {
		return aptitude.Score(input)
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		aptitudeScoreConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score aptitude answers: %w", err)
	}
	logger.Info("Aptitude scoring completed successfully")
	return nil
}
