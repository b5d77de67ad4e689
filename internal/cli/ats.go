package cli

import (
	"context"
	"fmt"

	"friede/internal/analysis"
	"friede/internal/common"

	"github.com/spf13/cobra"
)

var atsCmd = &cobra.Command{
	Use:   "ats [resume-file] [job-description-file]",
	Short: "Score a resume for ATS compatibility",
	Long: `Score a resume for applicant tracking system (ATS) compatibility.
The score is computed locally from section structure, keyword coverage and
formatting signals. An optional job description file improves the keyword
match.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if atsConfig.OutputFormat == "" {
			atsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(atsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runATS,
}

var atsConfig common.CommandConfig

var atsTargetRole string

func init() {
	atsCmd.Flags().StringVarP(&atsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	atsCmd.Flags().StringVar(&atsConfig.OutputFormat, "format", "", "Output format: json or text")
	atsCmd.Flags().StringVarP(&atsTargetRole, "target-role", "r", "", "Role the resume is aimed at")
}

type atsInput struct {
	resume         string
	jobDescription string
}

func runATS(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (atsInput, error) {
		if len(contents) == 0 {
			return atsInput{}, fmt.Errorf("expected at least 1 file path")
		}
		input := atsInput{resume: contents[0]}
		if len(contents) > 1 {
			input.jobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input atsInput, cfg common.CommandConfig) {
		logger.Info("Starting ATS scoring",
			"resume_chars", len(input.resume),
			"job_chars", len(input.jobDescription),
			"target_role", atsTargetRole,
			"output_format", cfg.OutputFormat)
	}

	operation := func(ctx context.Context, input atsInput) (analysis.ATSReport, error) {
		return analysis.ScoreATS(input.resume, atsTargetRole, input.jobDescription), nil
	}

	err := common.RunLocalCommand(
		cmd.Context(),
		logger,
		atsConfig,
		args,
		createInput,
		operation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("ATS scoring completed successfully")
	return nil
}
