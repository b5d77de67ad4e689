package cli

import (
	"context"

	"friede/internal/config"
	"friede/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "friede",
	Short: "A CLI tool for interview preparation using AI",
	Long: `Friede is a command-line tool that helps you prepare for job interviews.
It generates mock interviews, scores your answers, analyzes resumes, plans
career pathways and judges coding exercises against test cases.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

func init() {
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(atsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(aptitudeCmd)
	rootCmd.AddCommand(judgeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
