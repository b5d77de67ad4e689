package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"friede/internal/common"
	"friede/internal/judge"
	"friede/internal/utils"

	"github.com/spf13/cobra"
)

var judgeCmd = &cobra.Command{
	Use:   "judge [source-file] [test-cases-file]",
	Short: "Run code against test cases via Judge0",
	Long: `Run a source file against test cases on a Judge0 instance and report
per-case verdicts. The test cases file is a JSON array of objects with
input and expectedOutput fields; without it the code runs once with empty
stdin. The language is inferred from the file extension unless --language
is given.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if judgeConfig.OutputFormat == "" {
			judgeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(judgeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runJudge,
}

var judgeConfig common.CommandConfig

var judgeLanguage string

func init() {
	judgeCmd.Flags().StringVarP(&judgeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	judgeCmd.Flags().StringVar(&judgeConfig.OutputFormat, "format", "", "Output format: json or text")
	judgeCmd.Flags().StringVarP(&judgeLanguage, "language", "l", "", "Source language (default: inferred from extension)")
}

type judgeInput struct {
	source string
	cases  []judge.TestCase
}

func runJudge(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	languageName := judgeLanguage
	if languageName == "" {
		languageName = utils.LanguageHint(args[0])
	}
	lang, err := judge.ResolveLanguage(languageName)
	if err != nil {
		return err
	}

	client, err := judge.NewClient(&cfg.Judge, logger)
	if err != nil {
		return fmt.Errorf("failed to create Judge0 client: %w", err)
	}
	runner := judge.NewRunner(client, cfg.Judge.MaxConcurrency, logger)

	createInput := func(contents []string) (judgeInput, error) {
		if len(contents) == 0 {
			return judgeInput{}, fmt.Errorf("expected at least 1 file path")
		}
		input := judgeInput{source: contents[0]}
		if len(contents) > 1 {
			if err := json.Unmarshal([]byte(contents[1]), &input.cases); err != nil {
				return judgeInput{}, fmt.Errorf("failed to parse test cases file: %w", err)
			}
		}
		return input, nil
	}

	logDetails := func(input judgeInput, cfg common.CommandConfig) {
		logger.Info("Starting code judging",
			"language", lang.Name,
			"source_chars", len(input.source),
			"case_count", len(input.cases),
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, input judgeInput) (judge.RunReport, error) {
		report, err := runner.Run(ctx, lang, input.source, input.cases)
		if err != nil {
			return judge.RunReport{}, err
		}
		return *report, nil
	}

	err = common.RunLocalCommand(
		cmd.Context(),
		logger,
		judgeConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to judge code: %w", err)
	}
	logger.Info("Code judging completed successfully")
	return nil
}
